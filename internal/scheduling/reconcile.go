package scheduling

import (
	"context"
	"time"
)

// overlaps is the half-open interval test: [aStart,aEnd) and [bStart,bEnd)
// overlap iff aStart < bEnd && bStart < aEnd.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// contains reports whether the window fully covers [start, end).
func contains(w Window, start, end time.Time) bool {
	return !w.StartTime.After(start) && !w.EndTime.Before(end)
}

type windowOp int

const (
	opNone windowOp = iota
	opDelete
	opSplit
	opShrinkStart
	opShrinkEnd
)

// classify decides what booking [start, end) does to a window. First
// matching case wins:
//
//	exact match     -> delete, the window is fully consumed
//	strict interior -> split into [w.Start, start) and [end, w.End)
//	left-aligned    -> shrink to [end, w.End)
//	right-aligned   -> shrink to [w.Start, start)
//	anything else   -> untouched
func classify(w Window, start, end time.Time) windowOp {
	switch {
	case w.StartTime.Equal(start) && w.EndTime.Equal(end):
		return opDelete
	case start.After(w.StartTime) && end.Before(w.EndTime):
		return opSplit
	case w.StartTime.Equal(start):
		return opShrinkStart
	case w.EndTime.Equal(end):
		return opShrinkEnd
	default:
		return opNone
	}
}

// reconcile walks every window the professor has and consumes the booked
// span. Windows that do not touch the booking fall into opNone and are left
// alone; the scan is linear in the professor's window count.
func reconcile(ctx context.Context, repo Repository, windows []Window, start, end time.Time) error {
	for _, w := range windows {
		switch classify(w, start, end) {
		case opDelete:
			if err := repo.DeleteWindow(ctx, w.ID); err != nil {
				return err
			}

		case opSplit:
			left := Window{ProfessorID: w.ProfessorID, StartTime: w.StartTime, EndTime: start}
			right := Window{ProfessorID: w.ProfessorID, StartTime: end, EndTime: w.EndTime}
			if _, err := repo.InsertWindow(ctx, left); err != nil {
				return err
			}
			if _, err := repo.InsertWindow(ctx, right); err != nil {
				return err
			}
			if err := repo.DeleteWindow(ctx, w.ID); err != nil {
				return err
			}

		case opShrinkStart:
			if err := repo.UpdateWindowSpan(ctx, w.ID, end, w.EndTime); err != nil {
				return err
			}

		case opShrinkEnd:
			if err := repo.UpdateWindowSpan(ctx, w.ID, w.StartTime, start); err != nil {
				return err
			}

		case opNone:
			// untouched
		}
	}
	return nil
}

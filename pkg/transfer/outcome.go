package transfer

import (
	"github.com/arthur-debert/homevault/pkg/errors"
	"github.com/arthur-debert/homevault/pkg/types"
	"github.com/rs/zerolog"
)

// Status is the result of a stage for one item.
type Status int

const (
	// Included items continue to the next stage.
	Included Status = iota
	// Dropped items failed on an optional item, or were skipped.
	Dropped
	// Failed items failed on a required item and abort the run.
	Failed
)

func (s Status) String() string {
	switch s {
	case Included:
		return "included"
	case Dropped:
		return "dropped"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Outcome pairs an item with what a stage decided about it.
type Outcome struct {
	Item   types.PathItem
	Status Status
	Err    error

	// Link is the symlink bookkeeping attached to the item: on export the
	// record to store, on import the record to recreate at LinkAt.
	Link   *types.LinkRecord
	LinkAt string
}

// Kind returns the error code of a dropped or failed outcome.
func (o Outcome) Kind() errors.ErrorCode {
	if o.Err == nil {
		return ""
	}
	return errors.GetErrorCode(o.Err)
}

func include(item types.PathItem) Outcome {
	return Outcome{Item: item, Status: Included}
}

// reject fails required items and drops optional ones.
func reject(item types.PathItem, err error) Outcome {
	item.Skip = true
	if item.Required {
		return Outcome{Item: item, Status: Failed, Err: err}
	}
	return Outcome{Item: item, Status: Dropped, Err: err}
}

// firstFailure returns the error of the first failed outcome.
func firstFailure(outcomes []Outcome) error {
	for _, o := range outcomes {
		if o.Status == Failed {
			return o.Err
		}
	}
	return nil
}

// survivors keeps included outcomes and logs the dropped ones.
func survivors(outcomes []Outcome, logger zerolog.Logger, stage string) []Outcome {
	kept := make([]Outcome, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Status == Included {
			kept = append(kept, o)
			continue
		}
		ev := logger.Debug().Str("stage", stage).Str("path", o.Item.Path)
		if o.Err != nil {
			ev = ev.Str("reason", string(o.Kind())).Err(o.Err)
		}
		ev.Msg("Dropped item")
	}
	return kept
}

package reconcile

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sirosfoundation/go-finmsg/pkg/model"
)

// amountTolerance is the relative difference AmountsMatch accepts
// between linked amounts. Intermediaries deduct their charges en
// route, so a booked amount drifts below the instructed one.
var amountTolerance = decimal.New(1, -2)

// Reconciler links parsed messages into payment lifecycles. It keeps
// no state between calls; the zero value is ready to use.
type Reconciler struct{}

// New creates a reconciler.
func New() *Reconciler {
	return &Reconciler{}
}

// TraceLifecycle collects every message in pool transitively
// correlated with seed and returns the lifecycle in chronological
// order. Messages without a creation timestamp keep their discovery
// position, which follows pool order. The pool is read-only; the
// returned slice shares its elements. A seed with no links yields a
// single-element timeline.
func (r *Reconciler) TraceLifecycle(seed *model.PaymentMessage, pool []*model.PaymentMessage) []*model.PaymentMessage {
	if seed == nil {
		return nil
	}

	timeline := []*model.PaymentMessage{seed}
	visited := make(map[int]bool, len(pool))
	queue := []*model.PaymentMessage{seed}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for i, candidate := range pool {
			if visited[i] || candidate == nil || candidate == seed || candidate == current {
				continue
			}
			if !correlated(current, candidate) {
				continue
			}
			visited[i] = true
			timeline = append(timeline, candidate)
			queue = append(queue, candidate)
		}
	}

	sort.SliceStable(timeline, func(i, j int) bool {
		a, b := timeline[i].CreatedAt, timeline[j].CreatedAt
		if a == nil || b == nil {
			return false
		}
		return a.Before(*b)
	})
	return timeline
}

// correlated reports whether two messages belong to the same payment.
// Keys are consulted strongest first; a key that is present on both
// sides but unequal does not veto the weaker ones, so a recall whose
// reference misses still meets its resolution through the shared
// case.
func correlated(a, b *model.PaymentMessage) bool {
	if has(a.UETR) && has(b.UETR) && *a.UETR == *b.UETR {
		return true
	}
	if has(a.EndToEndID) && has(b.EndToEndID) && *a.EndToEndID == *b.EndToEndID {
		return true
	}
	if references(a, b) || references(b, a) {
		return true
	}
	if has(a.CaseID) && has(b.CaseID) && *a.CaseID == *b.CaseID {
		return true
	}
	return false
}

// references reports whether a names b as the message it concerns,
// the way a status report, recall or resolution carries the original
// message identification.
func references(a, b *model.PaymentMessage) bool {
	return has(a.OriginalMessageID) && b.MessageID != "" && *a.OriginalMessageID == b.MessageID
}

func has(p *string) bool {
	return p != nil && *p != ""
}

// AmountsMatch reports whether the amounts of two linked messages are
// consistent: equal, or within one percent of the larger. A missing
// amount on either side is not a contradiction and matches, as are
// amounts in different currencies or with exactly one currency
// unknown. Amounts that do not parse as numbers fall back to string
// comparison.
func AmountsMatch(a, b *model.PaymentMessage) bool {
	if a == nil || b == nil || a.Amount == nil || b.Amount == nil {
		return true
	}
	if !sameCurrency(a, b) {
		return true
	}

	da, errA := decimal.NewFromString(strings.TrimSpace(*a.Amount))
	db, errB := decimal.NewFromString(strings.TrimSpace(*b.Amount))
	if errA != nil || errB != nil {
		return *a.Amount == *b.Amount
	}
	if da.Equal(db) {
		return true
	}
	diff := da.Sub(db).Abs()
	larger := decimal.Max(da.Abs(), db.Abs())
	return diff.LessThanOrEqual(larger.Mul(amountTolerance))
}

func sameCurrency(a, b *model.PaymentMessage) bool {
	if a.Currency == nil || b.Currency == nil {
		return a.Currency == b.Currency
	}
	return *a.Currency == *b.Currency
}

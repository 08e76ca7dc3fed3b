// Package pack - human-readable plan rendering.

package pack

import (
	"fmt"
	"sort"
	"strings"

	"github.com/NathanHowell/fuel-can-packer/canister"
)

// FormatPlan renders a plan as the classic transfer report: recipients
// by descending fuel gained with their donor lines, a carry summary,
// and the final per-can state including cans left behind.
//
// cans must be the exact slice the plan was computed for.
func FormatPlan(cans []canister.Can, plan *Plan) string {
	var out strings.Builder

	type gain struct {
		idx   int
		delta int
	}
	var recipients []gain
	for i := range cans {
		if plan.Keep[i] {
			recipients = append(recipients, gain{idx: i, delta: plan.FinalFuel[i] - cans[i].FuelGrams})
		}
	}
	sort.SliceStable(recipients, func(a, b int) bool {
		return recipients[a].delta > recipients[b].delta
	})

	out.WriteString("\nTransfer plan:\n")
	for _, rec := range recipients {
		if rec.delta <= 0 {
			continue
		}
		can := &cans[rec.idx]
		targetGross := plan.FinalFuel[rec.idx] + can.Spec.EmptyWeightGrams
		fmt.Fprintf(&out, "- %s (%s): add %d g -> target fuel %d g (gross %d g, start gross %d g)\n",
			can.ID, can.Spec.Name, rec.delta, plan.FinalFuel[rec.idx], targetGross, can.GrossGrams)

		type inflow struct {
			idx    int
			amount int
		}
		var donors []inflow
		for d := range cans {
			if amt := plan.Transfers[d][rec.idx]; amt > 0 && d != rec.idx {
				donors = append(donors, inflow{idx: d, amount: amt})
			}
		}
		sort.SliceStable(donors, func(a, b int) bool {
			return donors[a].amount > donors[b].amount
		})
		for _, d := range donors {
			fmt.Fprintf(&out, "    from %s (%s): %d g\n",
				cans[d.idx].ID, cans[d.idx].Spec.Name, d.amount)
		}
	}

	var keptCount, totalGross int
	for i := range cans {
		if plan.Keep[i] {
			keptCount++
			totalGross += plan.FinalFuel[i] + cans[i].Spec.EmptyWeightGrams
		}
	}
	fmt.Fprintf(&out, "\nCarry %d cans, total gross weight %d g.\n", keptCount, totalGross)

	out.WriteString("\nFinal fuel per can (including empties):\n")
	for i := range cans {
		finalGross := plan.FinalFuel[i] + cans[i].Spec.EmptyWeightGrams
		suffix := ""
		if !plan.Keep[i] {
			suffix = " (left behind)"
		}
		fmt.Fprintf(&out, "- %s (%s): start gross %d g, final fuel %d g, final gross %d g%s\n",
			cans[i].ID, cans[i].Spec.Name, cans[i].GrossGrams, plan.FinalFuel[i], finalGross, suffix)
	}

	return out.String()
}

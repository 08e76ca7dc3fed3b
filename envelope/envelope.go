package envelope

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/NathanHowell/fuel-can-packer/canister"
	"github.com/NathanHowell/fuel-can-packer/pack"
)

var (
	// ErrBadRequest is returned when the request body is not valid JSON
	// or contains a non-integer gross weight.
	ErrBadRequest = errors.New("envelope: malformed request")
)

// Request is one solve request: gross weights per built-in size class,
// an opaque correlation id, and a sequence number used to supersede
// stale in-flight requests.
type Request struct {
	ID  string
	Seq uint64

	// Gross maps spec key (e.g. "msr_227") to gross weights in grams.
	Gross map[string][]int
}

// Response is the solve outcome for one request. Exactly one of Plan
// or Err is populated.
type Response struct {
	ID   string     `json:"id"`
	Seq  uint64     `json:"seq"`
	Plan *pack.Plan `json:"plan,omitempty"`
	Text string     `json:"text,omitempty"`
	Err  string     `json:"error,omitempty"`
}

// DecodeRequest parses a JSON body of the form
//
//	{"id":"r1","seq":3,"msr_110":[108],"msr_227":[327,177],"msr_450":[]}
//
// Unknown keys are ignored; absent size classes mean no cans of that
// class. Gross weights must be whole integers.
func DecodeRequest(body []byte) (Request, error) {
	if !gjson.ValidBytes(body) {
		return Request{}, fmt.Errorf("invalid JSON body: %w", ErrBadRequest)
	}
	root := gjson.ParseBytes(body)

	req := Request{
		ID:    root.Get("id").String(),
		Seq:   root.Get("seq").Uint(),
		Gross: make(map[string][]int),
	}
	for _, spec := range canister.DefaultSpecs() {
		arr := root.Get(spec.Key)
		if !arr.Exists() {
			continue
		}
		var gross []int
		var bad error
		arr.ForEach(func(_, value gjson.Result) bool {
			f := value.Float()
			g := int(f)
			if value.Type != gjson.Number || float64(g) != f {
				bad = fmt.Errorf("%s: gross weight %q is not a whole integer: %w",
					spec.Key, value.Raw, ErrBadRequest)

				return false
			}
			gross = append(gross, g)

			return true
		})
		if bad != nil {
			return Request{}, bad
		}
		req.Gross[spec.Key] = gross
	}

	return req, nil
}

// Cans materializes the request into canister values in canonical spec
// order (110g, 227g, 450g), with stable IDs assigned.
func (r Request) Cans() ([]canister.Can, error) {
	var cans []canister.Can
	for _, spec := range canister.DefaultSpecs() {
		cs, err := canister.FromGross(spec, r.Gross[spec.Key])
		if err != nil {
			return nil, err
		}
		cans = append(cans, cs...)
	}
	canister.AssignIDs(cans)

	return cans, nil
}

// Solve runs one request through the solver and folds any failure into
// the response's error string. Pure pass-through; never panics.
func Solve(req Request) Response {
	resp := Response{ID: req.ID, Seq: req.Seq}

	cans, err := req.Cans()
	if err != nil {
		resp.Err = err.Error()

		return resp
	}
	plan, err := pack.ComputePlan(cans)
	if err != nil {
		resp.Err = err.Error()

		return resp
	}
	resp.Plan = plan
	resp.Text = pack.FormatPlan(cans, plan)

	return resp
}

// Encode marshals the response envelope to JSON.
func (r Response) Encode() ([]byte, error) {
	return json.Marshal(r)
}

// Command fuelpack computes an optimal fuel-can consolidation plan.
//
// Interactive mode prompts for space-separated gross weights per MSR
// size class; -file reads a JSON request instead. -json switches the
// output from the text report to the JSON response envelope.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/NathanHowell/fuel-can-packer/canister"
	"github.com/NathanHowell/fuel-can-packer/envelope"
)

const usage = `Usage: fuelpack [flags]

Prompts for gross can weights (g) per MSR size class and prints the
optimal consolidation plan.

Flags:
`

func main() {
	jsonOut := flag.Bool("json", false, "Output the JSON response envelope instead of the text report")
	file := flag.String("file", "", "Read a JSON request from this path instead of prompting")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	req, err := readRequest(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	cans, err := req.Cans()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if len(cans) == 0 {
		fmt.Fprintln(os.Stderr, "No cans provided, exiting.")
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Detected total fuel: %d g across %d cans.\n",
		canister.TotalFuel(cans), len(cans))

	resp := envelope.Solve(req)
	if resp.Err != "" {
		fmt.Fprintf(os.Stderr, "Solver failed: %s\n", resp.Err)
		os.Exit(1)
	}

	if *jsonOut {
		body, err := resp.Encode()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(body))

		return
	}
	fmt.Println(resp.Text)
}

// readRequest builds the solve request from a JSON file or from
// interactive prompts.
func readRequest(file string) (envelope.Request, error) {
	if file != "" {
		body, err := os.ReadFile(file)
		if err != nil {
			return envelope.Request{}, err
		}

		return envelope.DecodeRequest(body)
	}

	fmt.Println("Fuel can packer (MSR only)")
	fmt.Println("Enter gross weights (g) for each size, space separated. Leave blank if none.")
	fmt.Println()

	in := bufio.NewReader(os.Stdin)
	req := envelope.Request{Gross: make(map[string][]int)}
	for _, spec := range canister.DefaultSpecs() {
		gross, err := promptGross(in, spec)
		if err != nil {
			return envelope.Request{}, err
		}
		req.Gross[spec.Key] = gross
	}

	return req, nil
}

// promptGross reads one line of space-separated integers for a spec.
func promptGross(in *bufio.Reader, spec canister.Spec) ([]int, error) {
	fmt.Printf("Gross weights for %s cans: ", spec.Name)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return nil, nil // EOF with no input means no cans of this class
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	var gross []int
	for _, raw := range strings.Fields(line) {
		g, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer weight %q", raw)
		}
		gross = append(gross, g)
	}

	return gross, nil
}

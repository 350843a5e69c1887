package main

import (
	"fmt"
	"os"

	"github.com/onepay-ir/onepay-client/cmd/onepay/commands"
	"github.com/onepay-ir/onepay-client/faults"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, faults.Classify(err).Message)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/ppiankov/lexaudit/internal/cli"
	"github.com/ppiankov/lexaudit/internal/model"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if model.ClassifyError(err) == model.CodeInvalidInput {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

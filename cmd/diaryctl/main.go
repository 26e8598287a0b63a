package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/fooddiary/internal/ctl"
)

func main() {
	if err := ctl.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/RajParmar007/Credit-Card-Statement-Parser/cmd"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("ccparser version %s\n", version)
		os.Exit(0)
	}

	cmd.Execute()
}

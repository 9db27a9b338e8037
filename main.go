package main

import (
	"os"

	"github.com/hoaithanh/giaitoan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

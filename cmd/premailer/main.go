package main

import (
	"os"

	"github.com/zostay/go-email-premailer/cmd/premailer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"clinic-booking/cmd/command"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := command.NewRootCommand().Execute(); err != nil {
		logrus.Errorf("%v", err)
		os.Exit(1)
	}
}

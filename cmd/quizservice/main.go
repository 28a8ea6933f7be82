package main

import (
	"os"

	"github.com/quizdesk/quiz-service/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"log"

	"github.com/exahelper/exam-quiz-bot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}

// tuichess is a chessboard for the terminal, playable with the mouse, the
// keyboard or typed moves, locally or over SSH.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "tuichess: %v\n", err)
		os.Exit(1)
	}
}

// Command ghrepo manages GitHub repositories from the command line.
package main

import (
	"os"

	"ghrepo/internal/commands"
)

func main() {
	os.Exit(commands.Execute())
}

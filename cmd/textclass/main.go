// Command textclass annotates every document of a corpus with a predicted
// category label using a pre-trained text-classification model.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "textclass",
		Short: "Corpus annotation with a pre-trained text classifier",
	}
	root.AddCommand(newRunCmd(), newVersionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

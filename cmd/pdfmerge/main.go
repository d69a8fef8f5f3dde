// Command pdfmerge merges the PDF files of every subdirectory of a root.
package main

import "github.com/MyCarrier-DevOps/go-pdfmerge/cmd"

func main() {
	cmd.Execute()
}

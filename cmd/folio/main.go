// Command folio serves and builds the portfolio site.
package main

func main() {
	Execute()
}

// Command bsb bridges a KQML message bus and an SBGN model viewer.
package main

func main() {
	Execute()
}

// Command notesctl is a terminal client for the notes API.
package main

func main() {
	Execute()
}

package main

import "sunup/cmd/sunup/root"

func main() {
	root.Execute()
}

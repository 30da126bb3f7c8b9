package main

import "notary-crawler/internal/cli"

func main() {
	cli.Execute()
}

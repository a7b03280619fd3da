package main

import "github.com/esteban0203/FMA-2/cmd/feedme"

func main() {
	feedme.Execute()
}

package main

import (
	"github.com/fintrackpro/FinTrack-Backend/api"
)

var envPath string = "."

func main() {
	server := api.NewServer(envPath)
	server.Start()
}

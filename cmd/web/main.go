package main

import "fitcoach_backend/internal/app"

func main() {
	app.Run()
}

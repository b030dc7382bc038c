package mockapi

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Transport routes client requests into an in-process fiber app without
// opening a socket. It lets the real HTTP gateway run against the mock.
type Transport struct {
	App *fiber.App
}

func (t Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.App.Test(req, -1)
}

package api

import (
	"net/http"

	"github.com/dekarrin/lingot/internal/version"
	"github.com/dekarrin/lingot/server/result"
)

// InfoModel is the response body of HTTPGetInfo.
type InfoModel struct {
	Version string `json:"version"`
}

// HTTPGetInfo returns a HandlerFunc that retrieves information on the API
// and server. It requires no authentication.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return Endpoint(api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	var resp InfoModel
	resp.Version = version.Current

	return result.OK(resp, "client got API info")
}

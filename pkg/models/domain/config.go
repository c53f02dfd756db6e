package domain

import "fmt"

// ConfigProfile is a named section of the profiles file.
type ConfigProfile struct {
	Name   string `json:"name"`
	APIURL string `json:"api_url"`
}

func (c ConfigProfile) String() string {
	return fmt.Sprintf("%s:%s", c.Name, c.APIURL)
}

package handlers

import "github.com/danielgtaylor/huma/v2"

// APIConfig returns huma's default config without the $schema response
// links, keeping response bodies identical to the documented JSON shapes.
func APIConfig(title, version string) huma.Config {
	config := huma.DefaultConfig(title, version)
	config.CreateHooks = nil
	config.Info.Description = "Presigned object storage URLs, short links and QR rendering for the QR share app."

	return config
}

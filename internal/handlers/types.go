package handlers

// Presign actions.
const (
	ActionPut    = "put"
	ActionGet    = "get"
	ActionVerify = "verify"
)

// PresignRequest asks for an upload or download URL, or verifies the password.
type PresignRequest struct {
	AccessPassword string `doc:"Shared access password, required for put and verify" header:"x-access-password"`
	Body           struct {
		_           struct{} `additionalProperties:"true" json:"-"`
		Action      string   `doc:"What to presign"                                 enum:"put,get,verify"          json:"action"`
		Key         string   `doc:"Object key, or the original file name for put"    example:"photo.png"            json:"key"         minLength:"1"`
		ContentType string   `doc:"MIME type of the upload"                          example:"image/png"            json:"contentType,omitempty"`
		Size        *int64   `doc:"Upload size in bytes, required for put"           example:"204800"               json:"size,omitempty"`
	}
}

// PresignResponse carries a URL and key, or a status for verify.
type PresignResponse struct {
	Body struct {
		URL    string `doc:"Presigned or public URL" json:"url,omitempty"`
		Key    string `doc:"Object key"              json:"key,omitempty"    example:"1718000000000.png"`
		Status string `doc:"ok for verify"           json:"status,omitempty"`
	}
}

// DownloadRequest names the object to stream.
type DownloadRequest struct {
	Key string `doc:"Object key" example:"1718000000000.png" minLength:"1" query:"key" required:"true"`
}

// CreateShortLinkRequest is the request body for creating a short link.
type CreateShortLinkRequest struct {
	Body struct {
		_       struct{} `additionalProperties:"true" json:"-"`
		Content string   `doc:"URL or text to share" example:"https://example.com/some/long/path" json:"content" maxLength:"10000" minLength:"1"`
	}
}

// CreateShortLinkResponse is the response for a successfully created short link.
type CreateShortLinkResponse struct {
	Body struct {
		Code     string `doc:"The short code"     example:"aB3xY9"                          json:"code"`
		ShortURL string `doc:"The full short URL" example:"https://qr.example.com/s/aB3xY9" json:"shortUrl"`
	}
}

// GetShortLinkRequest looks a short link up by code.
type GetShortLinkRequest struct {
	Code string `doc:"The short code" example:"aB3xY9" maxLength:"20" minLength:"1" query:"code" required:"true"`
}

// GetShortLinkResponse returns the stored record.
type GetShortLinkResponse struct {
	Body struct {
		Content   string `doc:"Stored content"                 json:"content"`
		Type      string `doc:"url or text"                    enum:"url,text"                   json:"type"`
		CreatedAt string `doc:"Creation time, ISO-8601 in UTC" example:"2026-01-02T03:04:05.000Z" json:"createdAt"`
	}
}

// PageRequest is the request for the short link page.
type PageRequest struct {
	Code string `doc:"The short code" example:"aB3xY9" path:"code"`
}

// PageResponse is either a redirect or an HTML document.
type PageResponse struct {
	Status       int
	Location     string `header:"Location"`
	ContentType  string `header:"Content-Type"`
	CacheControl string `header:"Cache-Control"`
	Body         []byte
}

// QRRequest describes the QR code image to render.
type QRRequest struct {
	Content string `doc:"Text to encode"      maxLength:"2953" minLength:"1" query:"content" required:"true"`
	Size    int    `default:"256"             doc:"Image width and height in pixels"                       maximum:"1024" minimum:"128" query:"size"`
	Level   string `default:"medium"          doc:"Error recovery level"                                   enum:"low,medium,high,highest"  query:"level"`
}

// QRResponse is a PNG image.
type QRResponse struct {
	ContentType  string `header:"Content-Type"`
	CacheControl string `header:"Cache-Control"`
	Body         []byte
}

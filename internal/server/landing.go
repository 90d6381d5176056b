package server

import (
	_ "embed"

	"github.com/russross/blackfriday/v2"
)

//go:embed landing.md
var landingMarkdown []byte

const landingShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Tweet Emotion Classification API</title>
</head>
<body>
`

// renderLanding converts the embedded markdown into a standalone HTML page.
// It is served when the static directory has no index.html.
func renderLanding() []byte {
	body := blackfriday.Run(landingMarkdown)
	page := make([]byte, 0, len(landingShell)+len(body)+32)
	page = append(page, landingShell...)
	page = append(page, body...)
	page = append(page, "</body>\n</html>\n"...)
	return page
}

// Package migrations embebe los archivos SQL de goose en el binario, para que
// el esquema se aplique en el arranque sin herramientas externas.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

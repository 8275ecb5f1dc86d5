// Package httpapi exposes the article, preference and ingestion services
// as a JSON API served by echo.
//
// Every response uses the same envelope:
//
//	{"success": bool, "message": string, "data": any, "errors": object}
//
// data is null on failure and errors is null on success.
package httpapi

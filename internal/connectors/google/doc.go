// Package google provides the Google Sheets and Drive clients used by the proxy.
//
// This package contains:
//   - Token sources that turn a service account credential into OAuth2 tokens
//   - Service factories for creating Sheets and Drive API clients
//   - Error classification for Google API failures (401, 403, 404, 429)
//   - Rate limiting to respect Google API quotas
//
// # Usage
//
// The proxy services never construct clients directly. They go through
// Factory, which implements driven.ClientFactory:
//
//	factory := google.NewFactory(settings.RateLimit)
//	client, err := factory.NewSheetsClient(ctx, cred)
//
// # OAuth2 Scopes
//
// Clients request the scopes of their surface:
//   - Sheets: spreadsheets, drive and drive.file
//   - Drive: drive, drive.file and drive.readonly
package google

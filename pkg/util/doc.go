// Package util provides shared helpers for safe file-path validation and
// text rendering used across mockhttp packages.
//
//   - SafeFilePath / SafeFilePathAllowAbsolute — reject path-traversal attempts
//   - TruncateBody — cap request/response bodies for safe logging
//   - Times / JoinWithAnd — prose rendering for assertion messages
package util

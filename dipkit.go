// Package dipkit derives search index documents from METS dissemination
// packages and repairs structural defects in those packages.
package dipkit

const (
	Version = "0.3.2"
	AppName = "dipkit"
)

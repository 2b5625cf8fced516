// Package errors provides the classified error type used across typstbuilder.
//
// Every error that crosses a package boundary towards the CLI is a ClassifiedError
// carrying a category (what part of the pipeline failed), a severity and optional
// structured context. The CLI adapter maps categories to exit codes.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryTemplate, "unknown template").
//		WithContext("template", name).
//		Build()
package errors

// Package demo writes the canned demonstration document used to try the tool
// without a real file at hand.
package demo

import (
	"github.com/jsontoggle/jsontoggle/internal/document"
)

// DefaultFileName is where the demo document lands when no name is given
const DefaultFileName = "demo.json"

// Document builds the demonstration document
func Document() document.Value {
	experimentalSearch := document.NewObject()
	experimentalSearch.Set("enabled", document.Bool(true))
	experimentalSearch.Set("version", document.Int(2))

	featureFlags := document.NewObject()
	featureFlags.Set("newDashboard", document.Bool(true))
	featureFlags.Set("darkMode", document.Bool(false))
	featureFlags.Set("experimentalSearch", experimentalSearch)

	notifications := document.NewObject()
	notifications.Set("email", document.Bool(true))
	notifications.Set("sms", document.Bool(false))

	settings := document.NewObject()
	settings.Set("theme", document.String("dark"))
	settings.Set("notifications", notifications)

	alice := document.NewObject()
	alice.Set("id", document.Int(1))
	alice.Set("name", document.String("Alice"))

	bob := document.NewObject()
	bob.Set("id", document.Int(2))
	bob.Set("name", document.String("Bob"))

	root := document.NewObject()
	root.Set("featureFlags", featureFlags)
	root.Set("settings", settings)
	root.Set("users", document.NewArray(alice, bob))
	return root
}

// Write saves the demonstration document to the given file
func Write(path, indent string) error {
	return document.Save(path, Document(), indent)
}

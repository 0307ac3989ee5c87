package ui

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// CSS for the custom titlebar and the settings page.
// Colors derive from currentColor so both color schemes work.
const appCSS = `
/* Titlebar */
headerbar {
    min-height: 38px;
    padding: 0 6px;
}

button.titlebutton {
    border-radius: 50%;
    min-width: 24px;
    min-height: 24px;
    padding: 4px;
}

button.titlebutton:hover {
    background-color: alpha(currentColor, 0.1);
}

/* Pin button */
togglebutton:checked,
button.toggle:checked {
    background-color: alpha(#3584e4, 0.2);
    color: #3584e4;
}

/* Settings cards */
.settings-card {
    border-radius: 12px;
    border: 1px solid alpha(currentColor, 0.12);
}

.settings-title {
    font-weight: 600;
}

.dialog-action-area {
    border-top: 1px solid alpha(currentColor, 0.1);
    padding-top: 12px;
}

button.dialog-button {
    min-width: 88px;
}

/* Destructive button - red */
button.destructive-action {
    background-color: #e01b24;
    color: white;
}

button.destructive-action:hover {
    background-color: #c01c28;
}

/* Flat dropdowns */
dropdown.flat > button {
    background-color: transparent;
}

dropdown.flat > button:hover {
    background-color: alpha(currentColor, 0.1);
}
`

// LoadStyles loads the custom CSS styles for the application.
// Should be called during application startup.
func LoadStyles() {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return
	}

	provider := gtk.NewCSSProvider()
	provider.LoadFromString(appCSS)

	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
}

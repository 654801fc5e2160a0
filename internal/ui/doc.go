// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the server:
//  1. [ProjectListView] : Browse and select projects
//  2. [DatasetListView] : Browse a project's datasets
//  3. [ImageListView] : Browse a dataset's images
//  4. [DetailView] : Inspect one image's annotations
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Remote fetches run as tea.Cmd functions so the interface stays responsive while pages load.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui

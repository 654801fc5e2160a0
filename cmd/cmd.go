// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// authCommand handles gateway session management
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage gateway sessions",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Log in with username and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.StringFlag{
						Name:    "username",
						Aliases: []string{"u"},
						Usage:   "Account username (defaults to credentials.username)",
					},
					&cli.StringFlag{
						Name:  "ice-config",
						Usage: "Read credentials from an ice.config style file",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Extract an existing session from a saved cURL command",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:  "web",
				Usage: "Sign in through the browser using OIDC",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.AuthWeb,
			},
			{
				Name:  "status",
				Usage: "Show current session state",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.AuthStatus,
			},
			{
				Name:  "logout",
				Usage: "Close the session and remove the saved token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.AuthLogout,
			},
		},
	}
}

// browseCommand handles read-only hierarchy navigation
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"ls"},
		Usage:   "Browse the project and screen hierarchies",
		Commands: []*cli.Command{
			{
				Name:   "projects",
				Usage:  "List projects",
				Flags:  append(configFlag(), outputFlags()...),
				Action: r.BrowseProjects,
			},
			{
				Name:  "project",
				Usage: "List datasets in a project",
				Flags: append(configFlag(),
					append([]cli.Flag{
						&cli.Int64Flag{Name: "id", Usage: "Project ID", Required: true},
					}, outputFlags()...)...),
				Action: r.BrowseProject,
			},
			{
				Name:  "dataset",
				Usage: "List images in a dataset",
				Flags: append(configFlag(),
					append([]cli.Flag{
						&cli.Int64Flag{Name: "id", Usage: "Dataset ID", Required: true},
					}, outputFlags()...)...),
				Action: r.BrowseDataset,
			},
			{
				Name:  "image",
				Usage: "Show image detail with annotations and regions",
				Flags: append(configFlag(),
					append([]cli.Flag{
						&cli.Int64Flag{Name: "id", Usage: "Image ID", Required: true},
					}, outputFlags()...)...),
				Action: r.BrowseImage,
			},
			{
				Name:   "screens",
				Usage:  "List screens",
				Flags:  append(configFlag(), outputFlags()...),
				Action: r.BrowseScreens,
			},
			{
				Name:  "screen",
				Usage: "List plates in a screen",
				Flags: append(configFlag(),
					append([]cli.Flag{
						&cli.Int64Flag{Name: "id", Usage: "Screen ID", Required: true},
					}, outputFlags()...)...),
				Action: r.BrowseScreen,
			},
			{
				Name:  "plate",
				Usage: "List wells and images on a plate",
				Flags: append(configFlag(),
					append([]cli.Flag{
						&cli.Int64Flag{Name: "id", Usage: "Plate ID", Required: true},
					}, outputFlags()...)...),
				Action: r.BrowsePlate,
			},
			{
				Name:   "folders",
				Usage:  "List top-level folders",
				Flags:  append(configFlag(), outputFlags()...),
				Action: r.BrowseFolders,
			},
			{
				Name:  "folder",
				Usage: "List the contents of a folder",
				Flags: append(configFlag(),
					append([]cli.Flag{
						&cli.Int64Flag{Name: "id", Usage: "Folder ID", Required: true},
					}, outputFlags()...)...),
				Action: r.BrowseFolder,
			},
		},
	}
}

// searchCommand handles annotation-driven image search
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Find images by tag or key/value annotation",
		Commands: []*cli.Command{
			{
				Name:  "tag",
				Usage: "Find images carrying a tag",
				Flags: append(configFlag(),
					append([]cli.Flag{
						&cli.StringFlag{Name: "value", Usage: "Tag text to search for"},
						&cli.Int64Flag{Name: "id", Usage: "Tag ID (skips the lookup by text)"},
						&cli.Int64Flag{Name: "dataset", Usage: "Restrict results to a dataset"},
					}, outputFlags()...)...),
				Action: r.SearchTag,
			},
			{
				Name:    "pair",
				Aliases: []string{"kv"},
				Usage:   "Find images carrying a key/value pair",
				Flags: append(configFlag(),
					append([]cli.Flag{
						&cli.StringFlag{Name: "key", Usage: "Pair key", Required: true},
						&cli.StringFlag{Name: "value", Usage: "Pair value", Required: true},
						&cli.Int64Flag{Name: "dataset", Usage: "Restrict results to a dataset"},
					}, outputFlags()...)...),
				Action: r.SearchPair,
			},
		},
	}
}

// annotateCommand handles tagging, key/value pairs, comments and attachments
func annotateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "annotate",
		Usage: "Attach annotations to remote objects",
		Commands: []*cli.Command{
			{
				Name:  "tag",
				Usage: "Tag an object, creating the tag when needed",
				Flags: append(configFlag(), targetFlags(
					&cli.StringFlag{Name: "value", Usage: "Tag text (created when no --tag is given)"},
					&cli.Int64Flag{Name: "tag", Usage: "Existing tag ID to link"},
				)...),
				Action: r.AnnotateTag,
			},
			{
				Name:  "kv",
				Usage: "Attach key/value pairs to an object",
				Flags: append(configFlag(), targetFlags(
					&cli.StringSliceFlag{Name: "pair", Aliases: []string{"p"}, Usage: "Pair in key=value form, repeatable", Required: true},
					&cli.StringFlag{Name: "namespace", Usage: "Annotation namespace"},
				)...),
				Action: r.AnnotateKV,
			},
			{
				Name:  "comment",
				Usage: "Comment on an object",
				Flags: append(configFlag(), targetFlags(
					&cli.StringFlag{Name: "text", Usage: "Comment text", Required: true},
				)...),
				Action: r.AnnotateComment,
			},
			{
				Name:  "attach",
				Usage: "Attach a file to an object",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: append(configFlag(), targetFlags(
					&cli.StringFlag{Name: "mime", Usage: "MIME type of the attachment", Value: "application/octet-stream"},
				)...),
				Action: r.AnnotateAttach,
			},
			{
				Name:   "list",
				Usage:  "List annotations on an object",
				Flags:  append(configFlag(), append(targetFlags(), outputFlags()...)...),
				Action: r.AnnotateList,
			},
			{
				Name:  "bulk",
				Usage: "Tag many images concurrently",
				Flags: append(configFlag(),
					&cli.Int64Flag{Name: "tag", Usage: "Tag ID to apply", Required: true},
					&cli.Int64Flag{Name: "dataset", Usage: "Tag every image in this dataset"},
					&cli.Int64SliceFlag{Name: "image", Usage: "Image ID, repeatable"},
					&cli.IntFlag{Name: "workers", Usage: "Concurrent workers", Value: 4},
				),
				Action: r.AnnotateBulk,
			},
		},
	}
}

// roiCommand handles regions of interest
func roiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "roi",
		Usage: "Inspect and organize regions of interest",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the regions on an image",
				Flags: append(configFlag(),
					append([]cli.Flag{
						&cli.Int64Flag{Name: "image", Usage: "Image ID", Required: true},
					}, outputFlags()...)...),
				Action: r.ROIList,
			},
			{
				Name:  "folder",
				Usage: "File a region into a folder",
				Flags: append(configFlag(),
					&cli.Int64Flag{Name: "id", Usage: "ROI ID", Required: true},
					&cli.Int64Flag{Name: "into", Usage: "Destination folder ID", Required: true},
				),
				Action: r.ROIFolder,
			},
		},
	}
}

// importCommand handles the import-and-replace workflow
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import an image, replacing same-named predecessors",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Flags: append(configFlag(),
			&cli.Int64Flag{Name: "dataset", Aliases: []string{"d"}, Usage: "Destination dataset ID", Required: true},
			&cli.StringFlag{Name: "policy", Usage: "What to do with replaced images: unlink, delete or delete-orphaned", Value: "unlink"},
		),
		Action: r.ImportRun,
	}
}

// exportCommand handles dataset export to local files
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a dataset's metadata to local files",
		Flags: append(configFlag(),
			&cli.Int64Flag{Name: "id", Usage: "Dataset ID", Required: true},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Output format: csv, markdown or text", Value: "csv"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output directory or base path"},
			&cli.BoolFlag{Name: "thumbnails", Usage: "Fetch thumbnails and compose a contact sheet (markdown only)"},
		),
		Action: r.ExportDataset,
	}
}

// cacheCommand handles the local metadata cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Cache remote metadata locally",
		Commands: []*cli.Command{
			{
				Name:  "dataset",
				Usage: "Cache a dataset's images and tags",
				Flags: append(configFlag(),
					&cli.Int64Flag{Name: "id", Usage: "Dataset ID to cache", Required: true},
				),
				Action: r.CacheDataset,
			},
			{
				Name:  "list",
				Usage: "List cached images",
				Flags: append(configFlag(),
					append([]cli.Flag{
						&cli.Int64Flag{Name: "dataset", Usage: "Filter by dataset ID"},
					}, outputFlags()...)...),
				Action: r.CacheList,
			},
		},
	}
}

// openCommand opens objects in the web interface
func openCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "open",
		Usage:  "Open an object in the web interface",
		Flags:  append(configFlag(), targetFlags()...),
		Action: r.OpenObject,
	}
}

// tuiCommand launches the terminal browser
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Browse the hierarchy interactively",
		Flags:  configFlag(),
		Action: r.TUI,
	}
}

// configFlag returns the config-file flag shared by every command.
func configFlag() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
	}
}

// outputFlags returns the json/pretty/save output flags.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "json", Usage: "Output raw JSON"},
		&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
		&cli.BoolFlag{Name: "save", Usage: "Save the response to a local JSON file"},
	}
}

// targetFlags returns the type/id flags addressing a remote object, plus extras.
func targetFlags(extra ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     "type",
			Aliases:  []string{"t"},
			Usage:    "Object type: project, dataset, image, screen, plate or folder",
			Required: true,
		},
		&cli.Int64Flag{Name: "id", Usage: "Object ID", Required: true},
	}
	return append(flags, extra...)
}

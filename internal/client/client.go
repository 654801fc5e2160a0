package client

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lmicro/gomero/internal/gateway"
	"github.com/lmicro/gomero/internal/models"
	"github.com/lmicro/gomero/internal/shared"
)

// Client is the facade all wrappers delegate to. It owns the gateway
// connection and hands out typed wrappers for remote objects.
type Client struct {
	gw     *gateway.Gateway
	logger *log.Logger
}

// New creates a Client over an existing gateway connection.
func New(gw *gateway.Gateway, logger *log.Logger) *Client {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Client{gw: gw, logger: logger}
}

// Connect builds a gateway from the server configuration and performs a
// session login.
func Connect(ctx context.Context, cfg *shared.Config, username, password string, logger *log.Logger) (*Client, error) {
	gw := gateway.New(gateway.Opts{BaseURL: cfg.Server.BaseURL(), Logger: logger})

	if err := gw.Login(ctx, username, password); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Server.BaseURL(), err)
	}

	return New(gw, logger), nil
}

// Gateway returns the underlying gateway connection.
func (c *Client) Gateway() *gateway.Gateway { return c.gw }

// Browse returns the gateway's read-only query facility.
func (c *Client) Browse() *gateway.Browser { return c.gw.Browser() }

// Data returns the gateway's write facility.
func (c *Client) Data() *gateway.DataManager { return c.gw.DataManager() }

// Connected reports whether the underlying gateway holds a session.
func (c *Client) Connected() bool { return c.gw.Connected() }

// Disconnect closes the remote session.
func (c *Client) Disconnect(ctx context.Context) error { return c.gw.Logout(ctx) }

// Projects lists all projects visible to the session as wrappers.
func (c *Client) Projects(ctx context.Context) ([]*Project, error) {
	projects, err := c.Browse().Projects(ctx)
	if err != nil {
		return nil, err
	}

	wrapped := make([]*Project, len(projects))
	for i, p := range projects {
		wrapped[i] = c.wrapProject(p)
	}
	return wrapped, nil
}

// Project fetches a single project wrapper by ID.
func (c *Client) Project(ctx context.Context, id int64) (*Project, error) {
	project, err := c.Browse().Project(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.wrapProject(*project), nil
}

// Datasets lists all datasets visible to the session as wrappers.
func (c *Client) Datasets(ctx context.Context) ([]*Dataset, error) {
	datasets, err := c.Browse().Datasets(ctx)
	if err != nil {
		return nil, err
	}

	wrapped := make([]*Dataset, len(datasets))
	for i, d := range datasets {
		wrapped[i] = c.wrapDataset(d)
	}
	return wrapped, nil
}

// Dataset fetches a single dataset wrapper by ID.
func (c *Client) Dataset(ctx context.Context, id int64) (*Dataset, error) {
	dataset, err := c.Browse().Dataset(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.wrapDataset(*dataset), nil
}

// DatasetsNamed lists dataset wrappers with an exact name match.
func (c *Client) DatasetsNamed(ctx context.Context, name string) ([]*Dataset, error) {
	datasets, err := c.Browse().DatasetsNamed(ctx, name)
	if err != nil {
		return nil, err
	}

	wrapped := make([]*Dataset, len(datasets))
	for i, d := range datasets {
		wrapped[i] = c.wrapDataset(d)
	}
	return wrapped, nil
}

// Image fetches a single image wrapper by ID.
func (c *Client) Image(ctx context.Context, id int64) (*Image, error) {
	image, err := c.Browse().Image(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.wrapImage(*image), nil
}

// ImagesTagged lists all images carrying the given tag, sorted by ID.
func (c *Client) ImagesTagged(ctx context.Context, tagID int64) ([]*Image, error) {
	images, err := c.Browse().ImagesTagged(ctx, tagID)
	if err != nil {
		return nil, err
	}
	return c.wrapImages(images), nil
}

// ImagesWithPair lists all images annotated with the given key/value pair.
func (c *Client) ImagesWithPair(ctx context.Context, key, value string) ([]*Image, error) {
	images, err := c.Browse().ImagesWithPair(ctx, key, value)
	if err != nil {
		return nil, err
	}
	return c.wrapImages(images), nil
}

// Screens lists all screens visible to the session as wrappers.
func (c *Client) Screens(ctx context.Context) ([]*Screen, error) {
	screens, err := c.Browse().Screens(ctx)
	if err != nil {
		return nil, err
	}

	wrapped := make([]*Screen, len(screens))
	for i, s := range screens {
		wrapped[i] = c.wrapScreen(s)
	}
	return wrapped, nil
}

// Screen fetches a single screen wrapper by ID.
func (c *Client) Screen(ctx context.Context, id int64) (*Screen, error) {
	screen, err := c.Browse().Screen(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.wrapScreen(*screen), nil
}

// Plate fetches a single plate wrapper by ID.
func (c *Client) Plate(ctx context.Context, id int64) (*Plate, error) {
	plate, err := c.Browse().Plate(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.wrapPlate(*plate), nil
}

// Folders lists all folders visible to the session as wrappers.
func (c *Client) Folders(ctx context.Context) ([]*Folder, error) {
	folders, err := c.Browse().Folders(ctx)
	if err != nil {
		return nil, err
	}

	wrapped := make([]*Folder, len(folders))
	for i, f := range folders {
		wrapped[i] = c.wrapFolder(f)
	}
	return wrapped, nil
}

// Folder fetches a single folder wrapper by ID.
func (c *Client) Folder(ctx context.Context, id int64) (*Folder, error) {
	folder, err := c.Browse().Folder(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.wrapFolder(*folder), nil
}

// Tags lists all tag annotations visible to the session.
func (c *Client) Tags(ctx context.Context) ([]models.TagAnnotation, error) {
	return c.Browse().Tags(ctx)
}

// TagNamed resolves a tag by exact value. Returns the lowest-ID match when
// several tags share the value.
func (c *Client) TagNamed(ctx context.Context, value string) (*models.TagAnnotation, error) {
	tags, err := c.Browse().TagsNamed(ctx, value)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: no tag %q", shared.ErrNotFound, value)
	}

	best := tags[0]
	for _, tag := range tags[1:] {
		if tag.ID < best.ID {
			best = tag
		}
	}
	return &best, nil
}

func (c *Client) wrapProject(p models.Project) *Project {
	return &Project{Project: p, annotatable: annotatable{conn: c, kind: "projects", id: p.ID}}
}

func (c *Client) wrapDataset(d models.Dataset) *Dataset {
	return &Dataset{Dataset: d, annotatable: annotatable{conn: c, kind: "datasets", id: d.ID}}
}

func (c *Client) wrapImage(i models.Image) *Image {
	return &Image{Image: i, annotatable: annotatable{conn: c, kind: "images", id: i.ID}}
}

func (c *Client) wrapScreen(s models.Screen) *Screen {
	return &Screen{Screen: s, annotatable: annotatable{conn: c, kind: "screens", id: s.ID}}
}

func (c *Client) wrapPlate(p models.Plate) *Plate {
	return &Plate{Plate: p, annotatable: annotatable{conn: c, kind: "plates", id: p.ID}}
}

func (c *Client) wrapWell(w models.Well) *Well {
	return &Well{Well: w, annotatable: annotatable{conn: c, kind: "wells", id: w.ID}}
}

func (c *Client) wrapFolder(f models.Folder) *Folder {
	return &Folder{Folder: f, annotatable: annotatable{conn: c, kind: "folders", id: f.ID}}
}

// wrapImages wraps a raw image collection, deduplicated and sorted by ID.
func (c *Client) wrapImages(images []models.Image) []*Image {
	images = distinctByID(images, func(i models.Image) int64 { return i.ID })

	wrapped := make([]*Image, len(images))
	for i, img := range images {
		wrapped[i] = c.wrapImage(img)
	}
	return wrapped
}

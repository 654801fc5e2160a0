package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmicro/gomero/internal/client"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ProjectListView ViewState = iota
	DatasetListView
	ImageListView
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx             context.Context
	view            ViewState
	conn            *client.Client
	width           int
	height          int
	projectList     list.Model
	datasetList     list.Model
	imageList       list.Model
	selectedProject *client.Project
	selectedDataset *client.Dataset
	detail          *imageDetail
	err             error
	help            help.Model
	keys            keyMap
}

// NewModel creates a new TUI model over a connected client.
func NewModel(ctx context.Context, conn *client.Client) *Model {
	return &Model{
		ctx:  ctx,
		view: ProjectListView,
		conn: conn,
		help: help.New(),
		keys: newKeyMap(),
	}
}

// Init initializes the TUI by fetching the project listing.
func (m *Model) Init() tea.Cmd {
	return m.fetchProjects()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.projectList, &m.datasetList, &m.imageList} {
			if l.Width() == 0 {
				l.SetSize(msg.Width-4, msg.Height-8)
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ProjectListView:
			return m.handleProjectListKeys(msg)
		case DatasetListView:
			return m.handleDatasetListKeys(msg)
		case ImageListView:
			return m.handleImageListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case projectsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.projects))
		for i, p := range msg.projects {
			items[i] = projectItem{project: p}
		}
		m.projectList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.projectList.Title = "Projects"
		m.projectList.SetSize(m.width-4, m.height-8)
		return m, nil

	case datasetsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = ProjectListView
			return m, nil
		}
		items := make([]list.Item, len(msg.datasets))
		for i, d := range msg.datasets {
			items[i] = datasetItem{dataset: d}
		}
		m.datasetList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.datasetList.Title = fmt.Sprintf("Datasets in '%s'", m.selectedProject.Name)
		m.datasetList.SetSize(m.width-4, m.height-8)
		m.view = DatasetListView
		return m, nil

	case imagesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = DatasetListView
			return m, nil
		}
		items := make([]list.Item, len(msg.images))
		for i, img := range msg.images {
			items[i] = imageItem{image: img}
		}
		m.imageList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.imageList.Title = fmt.Sprintf("Images in '%s'", m.selectedDataset.Name)
		m.imageList.SetSize(m.width-4, m.height-8)
		m.view = ImageListView
		return m, nil

	case detailFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = ImageListView
			return m, nil
		}
		m.detail = msg.detail
		m.view = DetailView
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view == ProjectListView && m.projectList.Items() == nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case ProjectListView:
		return m.renderProjectList()
	case DatasetListView:
		return m.renderDatasetList()
	case ImageListView:
		return m.renderImageList()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleProjectListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		return m, m.fetchProjects()
	case "enter":
		if selected := m.projectList.SelectedItem(); selected != nil {
			if p, ok := selected.(projectItem); ok {
				m.selectedProject = p.project
				return m, m.fetchDatasets(p.project)
			}
		}
	}

	var cmd tea.Cmd
	m.projectList, cmd = m.projectList.Update(msg)
	return m, cmd
}

func (m *Model) handleDatasetListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ProjectListView
		return m, nil
	case "enter":
		if selected := m.datasetList.SelectedItem(); selected != nil {
			if d, ok := selected.(datasetItem); ok {
				m.selectedDataset = d.dataset
				return m, m.fetchImages(d.dataset)
			}
		}
	}

	var cmd tea.Cmd
	m.datasetList, cmd = m.datasetList.Update(msg)
	return m, cmd
}

func (m *Model) handleImageListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = DatasetListView
		return m, nil
	case "enter":
		if selected := m.imageList.SelectedItem(); selected != nil {
			if img, ok := selected.(imageItem); ok {
				return m, m.fetchDetail(img.image)
			}
		}
	}

	var cmd tea.Cmd
	m.imageList, cmd = m.imageList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.detail = nil
		m.view = ImageListView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ProjectListView:
		m.projectList, cmd = m.projectList.Update(msg)
	case DatasetListView:
		m.datasetList, cmd = m.datasetList.Update(msg)
	case ImageListView:
		m.imageList, cmd = m.imageList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchProjects() tea.Cmd {
	return func() tea.Msg {
		projects, err := m.conn.Projects(m.ctx)
		return projectsFetchedMsg{projects: projects, err: err}
	}
}

func (m *Model) fetchDatasets(project *client.Project) tea.Cmd {
	return func() tea.Msg {
		datasets, err := project.Datasets(m.ctx)
		return datasetsFetchedMsg{datasets: datasets, err: err}
	}
}

func (m *Model) fetchImages(dataset *client.Dataset) tea.Cmd {
	return func() tea.Msg {
		images, err := dataset.Images(m.ctx)
		return imagesFetchedMsg{images: images, err: err}
	}
}

func (m *Model) fetchDetail(image *client.Image) tea.Cmd {
	return func() tea.Msg {
		detail := &imageDetail{image: image}

		tags, err := image.Tags(m.ctx)
		if err != nil {
			return detailFetchedMsg{err: err}
		}
		detail.tags = tags

		pairs, err := image.KeyValuePairs(m.ctx)
		if err != nil {
			return detailFetchedMsg{err: err}
		}
		detail.pairs = pairs

		rois, err := image.ROIs(m.ctx)
		if err != nil {
			return detailFetchedMsg{err: err}
		}
		detail.rois = rois

		return detailFetchedMsg{detail: detail}
	}
}

func (m *Model) renderProjectList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.projectList.View(), helpView)
}

func (m *Model) renderDatasetList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.datasetList.View(), helpView)
}

func (m *Model) renderImageList() string {
	inspectKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "inspect"))
	helpKeys := []key.Binding{inspectKey, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.imageList.View(), helpView)
}

func (m *Model) renderDetail() string {
	img := m.detail.image.Image
	title := styles.title.Render(img.Name)

	info := fmt.Sprintf("ID: %d\nDimensions: %dx%d, %d z-sections, %d channels, %d timepoints\n",
		img.ID, img.SizeX, img.SizeY, img.SizeZ, img.SizeC, img.SizeT)
	if img.Description != "" {
		info += fmt.Sprintf("Description: %s\n", img.Description)
	}

	var tags string
	if len(m.detail.tags) > 0 {
		tags = "\nTags:"
		for _, tag := range m.detail.tags {
			tags += fmt.Sprintf("\n  • %s", styles.ok.Render(tag.Value))
		}
		tags += "\n"
	}

	var pairs string
	if len(m.detail.pairs) > 0 {
		pairs = "\nKey/value pairs:"
		for _, pair := range m.detail.pairs {
			pairs += fmt.Sprintf("\n  %s: %s", pair.Key, pair.Value)
		}
		pairs += "\n"
	}

	var rois string
	if len(m.detail.rois) > 0 {
		rois = styles.warn.Render(fmt.Sprintf("\n%d regions of interest\n", len(m.detail.rois)))
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s%s%s%s\n%s", title, info, tags, pairs, rois, helpView)
}

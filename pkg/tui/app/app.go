// Package app hosts the Bubble Tea program: it owns the view-models, the
// message bus drain loop, and the pane layout.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/stockroom/pkg/bus"
	"tableflip.dev/stockroom/pkg/model"
	"tableflip.dev/stockroom/pkg/service"
	"tableflip.dev/stockroom/pkg/store"
	"tableflip.dev/stockroom/pkg/tui/components/confirm"
	"tableflip.dev/stockroom/pkg/tui/components/orderitemlist"
	"tableflip.dev/stockroom/pkg/tui/components/productdetail"
	"tableflip.dev/stockroom/pkg/tui/components/productlist"
	"tableflip.dev/stockroom/pkg/tui/components/statusbar"
	"tableflip.dev/stockroom/pkg/tui/theme"
	"tableflip.dev/stockroom/pkg/vm"
)

const watchSender = "store/watch"

// DefaultOrderID is the order the items pane opens with until navigation
// chooses another.
const DefaultOrderID = 1001

type pane int

const (
	paneProducts pane = iota
	paneDetail
	paneItems
)

type mode int

const (
	modeNormal mode = iota
	modeEdit
	modeConfirm
	modeSearch
)

// Options carries the backend the UI runs against.
type Options struct {
	Persistence store.Persistence
	Products    *service.Products
	Items       *service.OrderItems
	Bus         *bus.Bus
	Log         vm.Logger
	OrderID     int64
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx   context.Context
	opts  Options
	theme theme.Theme

	productList   *vm.ProductList
	productDetail *vm.ProductDetails
	orderItems    *vm.OrderItemList

	listPane   *productlist.Model
	detailPane *productdetail.Model
	itemsPane  *orderitemlist.Model
	footer     *statusbar.Model
	confirm    *confirm.Model
	search     textinput.Model

	focus pane
	mode  mode

	// pendingAction runs when the confirm overlay is accepted. The
	// view-model confirmation gates auto-accept because the overlay has
	// already asked.
	pendingAction func()

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc

	termWidth  int
	termHeight int
}

type busNotifyMsg struct{}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct{ event store.Event }

type watchStoppedMsg struct{}

// New builds the root model and its view-models.
func New(opts Options) *Model {
	if opts.Bus == nil {
		opts.Bus = bus.New()
	}
	if opts.OrderID == 0 {
		opts.OrderID = DefaultOrderID
	}
	th := theme.Default()

	m := &Model{
		ctx:   context.Background(),
		opts:  opts,
		theme: th,
	}

	m.footer = statusbar.New(th,
		"tab focus · enter open · e edit · n new · a add line · space mark · d delete · / search · q quit")
	m.confirm = confirm.New(th)

	m.search = textinput.New()
	m.search.Prompt = "/"
	m.search.Placeholder = "search products"

	deps := vm.Deps{
		Status: m.footer,
		// The overlay asks before any destructive call reaches the
		// view-model, so its own gate accepts.
		Confirm: vm.ConfirmFunc(func(string, string, string, string) bool { return true }),
		Nav:     (*navigator)(m),
		Log:     opts.Log,
	}

	m.productList = vm.NewProductList(opts.Products, opts.Bus, deps)
	m.productList.IsMainView = true
	m.productDetail = vm.NewProductDetails(opts.Products, opts.Bus, deps)
	m.orderItems = vm.NewOrderItemList(opts.Items, opts.Bus, deps)

	m.listPane = productlist.NewModel(m.productList, th)
	m.detailPane = productdetail.NewModel(m.productDetail, th)
	m.itemsPane = orderitemlist.NewModel(m.orderItems, th)

	m.focus = paneProducts
	m.listPane.Focus()
	return m
}

// Init loads the initial data and starts the bus and watch loops.
func (m *Model) Init() tea.Cmd {
	m.productList.Subscribe()
	m.productDetail.Subscribe()
	m.orderItems.Subscribe()

	m.productList.Load(m.ctx, vm.ProductListArgs{})
	m.orderItems.Load(m.ctx, vm.OrderItemListArgs{OrderID: m.opts.OrderID})
	if items := m.productList.Items(); len(items) > 0 {
		m.productDetail.Load(m.ctx, vm.ProductDetailsArgs{ProductID: items[0].ProductID})
	}
	m.syncPanes()

	return tea.Batch(m.waitForBus(), m.startWatch())
}

func (m *Model) waitForBus() tea.Cmd {
	ch := m.opts.Bus.Notify()
	return func() tea.Msg {
		<-ch
		return busNotifyMsg{}
	}
}

func (m *Model) startWatch() tea.Cmd {
	if m.opts.Persistence == nil {
		return nil
	}
	parent := m.ctx
	p := m.opts.Persistence
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := p.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// handleWatchEvent republishes store changes on the bus so every
// view-model resynchronizes through the same path as in-process changes.
func (m *Model) handleWatchEvent(ev store.Event) {
	switch ev.Type {
	case store.EventProductsChanged:
		m.opts.Bus.Publish(watchSender, vm.TopicProducts, vm.TagRefreshAll, nil)
	case store.EventOrderItemsChanged:
		m.opts.Bus.Publish(watchSender, vm.TopicOrderItems, vm.TagRefreshAll, nil)
	default:
		m.opts.Bus.Publish(watchSender, vm.TopicProducts, vm.TagRefreshAll, nil)
		m.opts.Bus.Publish(watchSender, vm.TopicOrderItems, vm.TagRefreshAll, nil)
	}
	m.drain()
}

// drain delivers queued bus envelopes on the UI goroutine and re-syncs
// pane cursors afterwards.
func (m *Model) drain() {
	if m.opts.Bus.Drain() > 0 {
		m.syncPanes()
	}
}

func (m *Model) syncPanes() {
	m.listPane.Sync()
	m.itemsPane.Sync()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case busNotifyMsg:
		m.drain()
		cmds = append(cmds, m.waitForBus())
	case watchStartedMsg:
		if msg.err != nil {
			m.footer.StatusError("ERR: watch " + msg.err.Error())
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		m.handleWatchEvent(msg.event)
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
		if cmd := m.startWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case confirm.ResultMsg:
		m.mode = modeNormal
		action := m.pendingAction
		m.pendingAction = nil
		if msg.Accepted && action != nil {
			action()
			m.syncPanes()
		}
	case productlist.HighlightMsg:
		if !m.productDetail.IsEditing() {
			m.productDetail.Load(m.ctx, vm.ProductDetailsArgs{ProductID: msg.ID})
		}
	case productlist.ChooseMsg:
		m.productDetail.Load(m.ctx, vm.ProductDetailsArgs{ProductID: msg.ID})
		m.setFocus(paneDetail)
	case tea.KeyPressMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	default:
		// Non-key messages (cursor blink and the like) go to the
		// components that hold text inputs.
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			if _, cmd := m.detailPane.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}

	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

// handleKey dispatches a keypress exactly once, by mode.
func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch m.mode {
	case modeConfirm:
		_, cmd := m.confirm.Update(msg)
		return cmd
	case modeSearch:
		switch msg.String() {
		case "enter":
			m.mode = modeNormal
			m.productList.ApplySearch(m.ctx, m.search.Value())
			m.syncPanes()
			return nil
		case "esc":
			m.mode = modeNormal
			m.search.SetValue("")
			m.productList.ApplySearch(m.ctx, "")
			m.syncPanes()
			return nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return cmd
	case modeEdit:
		switch msg.String() {
		case "esc":
			m.detailPane.CancelEdit()
			m.mode = modeNormal
			return nil
		case "ctrl+s":
			m.detailPane.Apply()
			if m.productDetail.Save(m.ctx) {
				m.mode = modeNormal
				m.drain()
			}
			return nil
		}
		_, cmd := m.detailPane.Update(msg)
		return cmd
	}
	return m.handleNormalKey(msg)
}

func (m *Model) handleNormalKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		m.stopWatch()
		m.productList.Unsubscribe()
		m.productDetail.Unsubscribe()
		m.orderItems.Unsubscribe()
		return tea.Quit
	case "tab":
		m.setFocus((m.focus + 1) % 3)
	case "shift+tab":
		m.setFocus((m.focus + 2) % 3)
	case "/":
		m.mode = modeSearch
		m.search.SetValue(m.productList.Args().Query)
		return m.search.Focus()
	case "r":
		m.productList.Refresh(m.ctx)
		m.orderItems.Refresh(m.ctx)
		m.syncPanes()
	case "n":
		m.productDetail.Load(m.ctx, vm.ProductDetailsArgs{})
		m.setFocus(paneDetail)
		m.mode = modeEdit
		return m.detailPane.BeginEdit()
	case "e":
		if m.focus == paneDetail || m.focus == paneProducts {
			if m.productDetail.Item() == nil || !m.productDetail.IsEnabled() {
				return nil
			}
			m.setFocus(paneDetail)
			m.mode = modeEdit
			return m.detailPane.BeginEdit()
		}
	case "a":
		m.addLineForSelection(m.orderItems.Args().OrderID)
	case "d":
		m.requestDelete()
	default:
		switch m.focus {
		case paneProducts:
			_, cmd := m.listPane.Update(msg)
			return cmd
		case paneItems:
			_, cmd := m.itemsPane.Update(msg)
			return cmd
		}
	}
	return nil
}

// addLineForSelection appends the highlighted product to the given order.
func (m *Model) addLineForSelection(orderID int64) {
	p := m.productList.Selected()
	if p == nil {
		p = m.productDetail.Item()
	}
	if p == nil || p.IsNew() || p.IsEmpty {
		m.footer.StatusWarning("Select a product to add")
		return
	}
	details := vm.NewOrderItemDetails(m.opts.Items, m.opts.Bus, vm.Deps{
		Status: m.footer,
		Log:    m.opts.Log,
	})
	details.Load(m.ctx, vm.OrderItemDetailsArgs{OrderID: orderID})
	item := details.Item()
	item.ProductID = p.ProductID
	item.ProductName = p.Name
	item.UnitPrice = p.ListPrice
	item.Quantity = 1
	if details.Save(m.ctx) {
		m.drain()
	}
}

// requestDelete arms the confirm overlay for whichever selection the
// focused pane holds.
func (m *Model) requestDelete() {
	switch m.focus {
	case paneItems:
		// Without marks the cursor's line is the selection; DeleteSelection
		// only acts on multi-select sets, so hand it one explicitly.
		if !m.orderItems.MultiSelect() {
			line := m.orderItems.Selected()
			if line == nil {
				return
			}
			m.showConfirm(
				fmt.Sprintf("Are you sure you want to delete line %d from order %d?",
					line.OrderLine, line.OrderID),
				func() {
					m.orderItems.SetSelectedItems([]*model.OrderItem{line})
					m.orderItems.DeleteSelection(m.ctx)
					m.drain()
				})
			return
		}
		count := m.orderItems.SelectionCount()
		if count == 0 {
			return
		}
		noun := "order items"
		if count == 1 {
			noun = "order item"
		}
		m.showConfirm(
			fmt.Sprintf("Are you sure you want to delete %d selected %s?", count, noun),
			func() {
				m.orderItems.DeleteSelection(m.ctx)
				m.drain()
			})
	case paneProducts:
		if m.productList.MultiSelect() {
			count := m.productList.SelectionCount()
			if count == 0 {
				return
			}
			noun := "products"
			if count == 1 {
				noun = "product"
			}
			m.showConfirm(
				fmt.Sprintf("Are you sure you want to delete %d selected %s?", count, noun),
				func() {
					m.productList.DeleteSelection(m.ctx)
					m.drain()
				})
			return
		}
		fallthrough
	case paneDetail:
		item := m.productDetail.Item()
		if item == nil || item.IsNew() || item.IsEmpty {
			return
		}
		m.showConfirm("Are you sure you want to delete current product?", func() {
			if m.productDetail.Delete(m.ctx) {
				m.productList.Refresh(m.ctx)
				m.drain()
			}
		})
	}
}

func (m *Model) showConfirm(message string, action func()) {
	m.confirm.Show("Confirm Delete", message, "Delete", "Cancel")
	m.pendingAction = action
	m.mode = modeConfirm
}

func (m *Model) setFocus(p pane) {
	m.focus = p
	m.listPane.Blur()
	m.detailPane.Blur()
	m.itemsPane.Blur()
	switch p {
	case paneProducts:
		m.listPane.Focus()
	case paneDetail:
		m.detailPane.Focus()
	case paneItems:
		m.itemsPane.Focus()
	}
}

func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	body := m.termHeight - 1 // footer
	left := m.termWidth / 2
	if left < 40 {
		left = 40
	}
	right := m.termWidth - left
	if right < 30 {
		right = 30
		left = m.termWidth - right
	}

	// Frames eat two columns and two rows each.
	m.listPane.SetSize(left-4, body-2)
	detailHeight := (body * 3) / 5
	m.detailPane.SetSize(right-4, detailHeight-2)
	m.itemsPane.SetSize(right-4, body-detailHeight-2)
	m.footer.SetSize(m.termWidth, 1)
	m.confirm.SetSize(m.termWidth, body)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.termWidth == 0 {
		return "loading..."
	}
	if m.mode == modeConfirm {
		return m.confirm.View() + "\n" + m.footer.View()
	}

	frame := func(body string, focused bool) string {
		if focused {
			return m.theme.Panel.FocusedFrame.Render(body)
		}
		return m.theme.Panel.Frame.Render(body)
	}

	leftCol := frame(m.listPane.View(), m.focus == paneProducts)
	rightCol := lipgloss.JoinVertical(lipgloss.Left,
		frame(m.detailPane.View(), m.focus == paneDetail),
		frame(m.itemsPane.View(), m.focus == paneItems))
	bodyView := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, rightCol)

	footer := m.footer.View()
	if m.mode == modeSearch {
		footer = m.search.View()
	}
	return bodyView + "\n" + footer
}

// navigator adapts the root model to the view-model navigation boundary.
type navigator Model

// Navigate opens args in the current surface.
func (n *navigator) Navigate(args any) { (*Model)(n).navigate(args) }

// OpenInNewView opens args in a fresh surface. The terminal has a single
// window, so it behaves like Navigate with focus.
func (n *navigator) OpenInNewView(args any) { (*Model)(n).navigate(args) }

func (m *Model) navigate(args any) {
	switch a := args.(type) {
	case vm.ProductDetailsArgs:
		m.productDetail.Load(m.ctx, a)
		m.setFocus(paneDetail)
	case vm.OrderItemDetailsArgs:
		m.addLineForSelection(a.OrderID)
	case vm.OrderItemListArgs:
		m.orderItems.Load(m.ctx, a)
		m.setFocus(paneItems)
		m.syncPanes()
	case vm.ProductListArgs:
		m.productList.Load(m.ctx, a)
		m.setFocus(paneProducts)
		m.syncPanes()
	}
}

// Run launches the UI against the given backend.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package peer

import (
	"errors"
	"fmt"
	"io"
	"net"
	"qenolaba/communication"
	"qenolaba/meta"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Messages are sent one per connection and are at most maxMessage bytes.
const (
	maxMessage  = 1024
	dialTimeout = time.Second
	readTimeout = 2 * time.Second
)

// dial opens the connection for one message.
var dial = net.DialTimeout

type listener struct {
	addr      string
	reachable bool
}

// Peer mirrors positions between running programs over TCP. Every peer
// listens on a port and keeps a list of listeners it sends its positions to.
type Peer struct {
	port      int
	ln        net.Listener
	mu        sync.Mutex
	listeners []*listener
	handler   communication.Handler
	closed    chan struct{}
	wg        sync.WaitGroup
}

var _ communication.Communicator = (*Peer)(nil)

// Listen binds to the first free port of port .. port+meta.PORT_RANGE-1.
// Programs on the lower local ports of the range and the given peer
// addresses ("host:port") are asked to register this peer as listener.
func Listen(port int, peers []string) (*Peer, error) {
	var ln net.Listener
	var err error
	i := 0
	for ; i < meta.PORT_RANGE; i++ {
		ln, err = net.Listen("tcp", ":"+strconv.Itoa(port+i))
		if err == nil {
			break
		}
		log.Debug().Msgf("port %d in use", port+i)
	}
	if ln == nil {
		return nil, fmt.Errorf("failed to bind to ports %d..%d: %w", port, port+meta.PORT_RANGE-1, err)
	}

	p := &Peer{
		port:   port + i,
		ln:     ln,
		closed: make(chan struct{}),
	}
	log.Info().Msgf("peer listening on port %d", p.port)

	for j := 0; j < i; j++ {
		p.addListener(net.JoinHostPort("127.0.0.1", strconv.Itoa(port+j)))
	}
	for _, addr := range peers {
		p.addListener(addr)
	}

	p.wg.Add(1)
	go p.serve()
	return p, nil
}

func (p *Peer) Port() int {
	return p.port
}

// Listeners returns the addresses positions are currently sent to.
func (p *Peer) Listeners() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	addrs := []string{}
	for _, l := range p.listeners {
		if l.reachable {
			addrs = append(addrs, l.addr)
		}
	}
	return addrs
}

func (p *Peer) OnPosition(handler func(diagram string)) {
	p.handler.Set(handler)
}

// Broadcast sends diagram to every reachable listener. A listener that
// cannot be reached is not tried again. The listener list stays unlocked
// while sending.
func (p *Peer) Broadcast(diagram string) {
	p.mu.Lock()
	targets := []*listener{}
	for _, l := range p.listeners {
		if l.reachable {
			targets = append(targets, l)
		}
	}
	p.mu.Unlock()

	for _, l := range targets {
		if err := send(l.addr, "pos "+diagram); err != nil {
			log.Warn().Err(err).Msgf("listener %s is unreachable", l.addr)
			p.mu.Lock()
			l.reachable = false
			p.mu.Unlock()
		}
	}
}

// Close deregisters from all reachable listeners and stops listening.
func (p *Peer) Close() error {
	select {
	case <-p.closed:
		return nil
	default:
	}
	close(p.closed)
	err := p.ln.Close()
	p.wg.Wait()

	addrs := p.Listeners()
	p.mu.Lock()
	p.listeners = nil
	p.mu.Unlock()

	msg := "unreg " + strconv.Itoa(p.port)
	for _, addr := range addrs {
		if err := send(addr, msg); err != nil {
			log.Debug().Err(err).Msgf("failed to deregister from %s", addr)
		}
	}
	return err
}

// addListener registers with the program at addr and keeps it as
// listener if it answered.
func (p *Peer) addListener(addr string) {
	if err := send(addr, "reg "+strconv.Itoa(p.port)); err != nil {
		log.Debug().Err(err).Msgf("no peer at %s", addr)
		return
	}
	p.register(addr)
}

// register adds addr to the listeners. It reports false if addr was
// listed already, which makes it reachable again.
func (p *Peer) register(addr string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, l := range p.listeners {
		if l.addr == addr {
			l.reachable = true
			return false
		}
	}
	p.listeners = append(p.listeners, &listener{addr: addr, reachable: true})
	return true
}

func (p *Peer) serve() {
	defer p.wg.Done()
	for {
		conn, err := p.ln.Accept()
		if err != nil {
			select {
			case <-p.closed:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Warn().Err(err).Msg("failed to accept connection")
			continue
		}
		p.handle(conn)
	}
}

func (p *Peer) handle(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	data, err := io.ReadAll(io.LimitReader(conn, maxMessage))
	if err != nil {
		log.Warn().Err(err).Msg("failed to read message")
		return
	}
	msg := string(data)

	var host string
	if addr, ok := conn.RemoteAddr().(*net.TCPAddr); ok {
		host = addr.IP.String()
	}

	switch {
	case strings.HasPrefix(msg, "reg "):
		port, err := strconv.Atoi(strings.TrimSpace(msg[4:]))
		if err != nil {
			log.Warn().Msgf("bad registration %q", msg)
			return
		}
		addr := net.JoinHostPort(host, strconv.Itoa(port))
		if p.register(addr) {
			log.Debug().Msgf("registered listener %s", addr)
		} else {
			log.Debug().Msgf("listener %s registered again", addr)
		}

	case strings.HasPrefix(msg, "unreg "):
		port, err := strconv.Atoi(strings.TrimSpace(msg[6:]))
		if err != nil {
			log.Warn().Msgf("bad deregistration %q", msg)
			return
		}
		addr := net.JoinHostPort(host, strconv.Itoa(port))
		if !p.removeListener(addr) {
			log.Warn().Msgf("deregistration of unknown listener %s", addr)
		}

	case strings.HasPrefix(msg, "pos "):
		p.handler.Call(msg[4:])

	default:
		log.Debug().Msgf("ignoring message %q", msg)
	}
}

func (p *Peer) removeListener(addr string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, l := range p.listeners {
		if l.addr == addr {
			p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
			return true
		}
	}
	return false
}

func send(addr, msg string) error {
	conn, err := dial("tcp", addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer conn.Close()
	if _, err := io.WriteString(conn, msg); err != nil {
		return fmt.Errorf("failed to send to %s: %w", addr, err)
	}
	return nil
}

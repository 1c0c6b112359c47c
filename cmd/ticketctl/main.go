// Command ticketctl is a small HTTP client for the helpdesk service. It
// covers the workflows operators previously ran through ad-hoc scripts:
// listing ticket types, creating tickets, listing the inbox and pulling
// dashboard stats.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	flag "github.com/spf13/pflag"
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8080", "base URL of the helpdesk service")
		username = flag.String("username", "", "login username")
		password = flag.String("password", "", "login password")
		timeout  = flag.Duration("timeout", 30*time.Second, "HTTP request timeout")
	)
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "error: --username and --password are required")
		os.Exit(2)
	}

	client := &client{
		baseURL: *baseURL,
		http:    &http.Client{Timeout: *timeout},
	}
	if err := client.login(*username, *password); err != nil {
		fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
		os.Exit(1)
	}

	var err error
	switch args[0] {
	case "types":
		err = client.listTypes()
	case "list":
		err = client.listTickets()
	case "create":
		err = runCreate(client, args[1:])
	case "stats":
		err = client.stats()
	case "dashboard":
		err = client.dashboard()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: ticketctl [flags] <command>

commands:
  types       list ticket types
  list        list tickets in inbox order
  create      create a ticket (see create flags below)
  stats       full stats bundle
  dashboard   reduced dashboard stats

create flags:
  --type --description --requester (required)
  --title --email --urgency (optional)

flags:
`)
	flag.PrintDefaults()
}

func runCreate(c *client, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	var (
		typeName    = fs.String("type", "", "ticket type name")
		title       = fs.String("title", "", "ticket title")
		description = fs.String("description", "", "ticket description")
		requester   = fs.String("requester", "", "requester name")
		email       = fs.String("email", "", "requester email")
		urgency     = fs.String("urgency", "", "low, medium or high")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *typeName == "" || *description == "" || *requester == "" {
		return errors.New("--type, --description and --requester are required")
	}
	return c.createTicket(map[string]string{
		"type":            *typeName,
		"title":           *title,
		"description":     *description,
		"requester":       *requester,
		"requester_email": *email,
		"urgency":         *urgency,
	})
}

type client struct {
	baseURL string
	http    *http.Client
	token   string
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type ticket struct {
	ID           int64  `json:"id"`
	TicketNumber int64  `json:"ticket_number"`
	TypeName     string `json:"type_name"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requester    string `json:"requester"`
	Urgency      string `json:"urgency"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

func (c *client) login(username, password string) error {
	var resp struct {
		AccessToken string `json:"access_token"`
		User        struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	if err := c.do("POST", "/api/auth/login",
		map[string]string{"username": username, "password": password}, &resp); err != nil {
		return err
	}
	c.token = resp.AccessToken
	fmt.Printf("logged in as %s (%s)\n", resp.User.Username, resp.User.Role)
	return nil
}

func (c *client) listTypes() error {
	var types []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsActive    bool   `json:"is_active"`
	}
	if err := c.do("GET", "/api/tickets/types", nil, &types); err != nil {
		return err
	}
	for _, t := range types {
		active := ""
		if !t.IsActive {
			active = " (inactive)"
		}
		fmt.Printf("%s%s - %s\n", t.Name, active, t.Description)
	}
	return nil
}

func (c *client) listTickets() error {
	var tickets []ticket
	if err := c.do("GET", "/api/tickets/", nil, &tickets); err != nil {
		return err
	}
	fmt.Printf("%d tickets\n", len(tickets))
	for _, t := range tickets {
		fmt.Printf("#%d [%s/%s] %s - %s (%s)\n",
			t.TicketNumber, t.Urgency, t.Status, t.TypeName, t.Description, t.Requester)
	}
	return nil
}

func (c *client) createTicket(payload map[string]string) error {
	var created ticket
	err := c.do("POST", "/api/tickets/", payload, &created)
	if err != nil {
		// A timed-out create may or may not have committed. Re-query
		// instead of retrying blindly, which could duplicate the ticket.
		if isTimeout(err) {
			fmt.Fprintln(os.Stderr, "request timed out; outcome unknown, re-listing tickets")
			return c.listTickets()
		}
		return err
	}
	fmt.Printf("created ticket #%d (id %d, status %s)\n", created.TicketNumber, created.ID, created.Status)
	return nil
}

func (c *client) stats() error {
	var raw json.RawMessage
	if err := c.do("GET", "/api/stats/", nil, &raw); err != nil {
		return err
	}
	return printIndented(raw)
}

func (c *client) dashboard() error {
	var raw json.RawMessage
	if err := c.do("GET", "/api/stats/dashboard", nil, &raw); err != nil {
		return err
	}
	return printIndented(raw)
}

func printIndented(raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	fmt.Println(buf.String())
	return nil
}

func (c *client) do(method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope errorEnvelope
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil && envelope.Error.Message != "" {
			return fmt.Errorf("%s (%s)", envelope.Error.Message, envelope.Error.Code)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

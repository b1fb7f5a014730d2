package mcp_test

import (
	"context"
	"encoding/json"
	"errors"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/marksort/api/mcp"
	marksortlogger "github.com/papercomputeco/marksort/pkg/logger"
	"github.com/papercomputeco/marksort/pkg/reorder"
	"github.com/papercomputeco/marksort/pkg/usage"
)

type fakeService struct {
	entries    []usage.Entry
	statsErr   error
	plans      []reorder.Policy
	visits     []string
	queueFull  bool
	statsLimit int
}

func (f *fakeService) PlanReorder(_ context.Context, p reorder.Policy) (*reorder.Report, error) {
	f.plans = append(f.plans, p)
	return &reorder.Report{Folders: 2, Moves: []reorder.Move{{ID: "b", ParentID: "1", From: 1, To: 0}}}, nil
}

func (f *fakeService) RecordVisit(_ context.Context, url string) bool {
	f.visits = append(f.visits, url)
	return !f.queueFull
}

func (f *fakeService) Stats(_ context.Context, limit int) ([]usage.Entry, error) {
	f.statsLimit = limit
	return f.entries, f.statsErr
}

var _ = Describe("MCP Server", func() {
	var (
		server  *mcp.Server
		svc     *fakeService
		session *sdkmcp.ClientSession
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		svc = &fakeService{entries: []usage.Entry{{Identity: "https://a.invalid/", Count: 3}}}

		var err error
		server, err = mcp.NewServer(mcp.Config{
			Service: svc,
			Policy:  reorder.DefaultPolicy(),
			Logger:  marksortlogger.Nop(),
		})
		Expect(err).NotTo(HaveOccurred())

		clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
		_, err = server.MCPServer().Connect(ctx, serverTransport, nil)
		Expect(err).NotTo(HaveOccurred())

		client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "marksort-test", Version: "v0"}, nil)
		session, err = client.Connect(ctx, clientTransport, nil)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if session != nil {
			session.Close()
		}
	})

	call := func(name string, args map[string]any) (*sdkmcp.CallToolResult, map[string]any) {
		res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Content).NotTo(BeEmpty())

		text, ok := res.Content[0].(*sdkmcp.TextContent)
		Expect(ok).To(BeTrue())

		var out map[string]any
		if !res.IsError {
			Expect(json.Unmarshal([]byte(text.Text), &out)).To(Succeed())
		}
		return res, out
	}

	Describe("NewServer", func() {
		It("returns an error when service is nil", func() {
			_, err := mcp.NewServer(mcp.Config{Logger: marksortlogger.Nop()})
			Expect(err).To(MatchError(ContainSubstring("service is required")))
		})

		It("returns an error when logger is nil", func() {
			_, err := mcp.NewServer(mcp.Config{Service: svc})
			Expect(err).To(MatchError(ContainSubstring("logger is required")))
		})

		It("allows an empty noop server", func() {
			s, err := mcp.NewServer(mcp.Config{Noop: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Handler()).NotTo(BeNil())
		})

		It("returns an HTTP handler", func() {
			Expect(server.Handler()).NotTo(BeNil())
		})
	})

	It("lists the marksort tools", func() {
		res, err := session.ListTools(ctx, &sdkmcp.ListToolsParams{})
		Expect(err).NotTo(HaveOccurred())

		names := make([]string, 0, len(res.Tools))
		for _, t := range res.Tools {
			names = append(names, t.Name)
		}
		Expect(names).To(ConsistOf("usage_stats", "plan_reorder", "record_visit"))
	})

	Describe("usage_stats", func() {
		It("defaults the limit and returns entries", func() {
			_, out := call("usage_stats", map[string]any{})

			Expect(svc.statsLimit).To(Equal(20))
			Expect(out["count"]).To(BeNumerically("==", 1))
		})

		It("reports service failures as tool errors", func() {
			svc.statsErr = errors.New("kv offline")

			res, _ := call("usage_stats", map[string]any{"limit": 5})
			Expect(res.IsError).To(BeTrue())
		})
	})

	Describe("plan_reorder", func() {
		It("overrides only the flags given", func() {
			_, out := call("plan_reorder", map[string]any{"sort_folder_contents": true})

			want := reorder.DefaultPolicy()
			want.SortFolderContents = true
			Expect(svc.plans).To(Equal([]reorder.Policy{want}))
			Expect(out).To(HaveKey("report"))
		})
	})

	Describe("record_visit", func() {
		It("queues the visit", func() {
			_, out := call("record_visit", map[string]any{"url": "https://a.invalid/x"})

			Expect(svc.visits).To(Equal([]string{"https://a.invalid/x"}))
			Expect(out["queued"]).To(BeTrue())
		})

		It("rejects an empty url", func() {
			res, _ := call("record_visit", map[string]any{"url": ""})
			Expect(res.IsError).To(BeTrue())
			Expect(svc.visits).To(BeEmpty())
		})
	})
})

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"sync"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"
)

// brew-bench dispara N preparos concorrentes contra /brew-coffee e conta os
// status. Com contador começando em 0, espera-se floor(N/SHED_EVERY) respostas 503.
func main() {
	target := flag.String("url", "http://localhost:8080/brew-coffee", "brew endpoint")
	n := flag.Int("n", 202, "number of requests")
	c := flag.Int("c", 50, "max in-flight requests")
	lat := flag.String("lat", "", "latitude query parameter")
	lon := flag.String("lon", "", "longitude query parameter")
	timeout := flag.Duration("timeout", 10*time.Second, "per-request timeout")
	flag.Parse()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{TimeFormat: time.Kitchen}))

	u, err := buildURL(*target, *lat, *lon)
	if err != nil {
		logger.Error("invalid url", "error", err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := &http.Client{Timeout: *timeout}
	start := time.Now()
	tally, err := fire(ctx, client, u, *n, *c)
	if err != nil {
		logger.Error("bench aborted", "error", err)
		os.Exit(1)
	}

	printTally(os.Stdout, tally, *n, time.Since(start))
}

func buildURL(target, lat, lon string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", err
	}
	q := u.Query()
	if lat != "" {
		q.Set("lat", lat)
	}
	if lon != "" {
		q.Set("lon", lon)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// fire envia n GETs com no máximo c em voo. Erros de transporte contam como status 0.
func fire(ctx context.Context, client *http.Client, target string, n, c int) (map[int]int, error) {
	var (
		mu    sync.Mutex
		tally = make(map[int]int)
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			status := 0
			req, err := http.NewRequestWithContext(gctx, http.MethodGet, target, nil)
			if err != nil {
				return err
			}
			if resp, err := client.Do(req); err == nil {
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				status = resp.StatusCode
			}

			mu.Lock()
			tally[status]++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tally, nil
}

func printTally(w io.Writer, tally map[int]int, n int, elapsed time.Duration) {
	codes := make([]int, 0, len(tally))
	for code := range tally {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STATUS\tCOUNT")
	fmt.Fprintln(tw, "------\t-----")
	for _, code := range codes {
		label := strconv.Itoa(code)
		if code == 0 {
			label = "error"
		}
		fmt.Fprintf(tw, "%s\t%d\n", label, tally[code])
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%d requests in %s\n", n, elapsed.Round(time.Millisecond))
}

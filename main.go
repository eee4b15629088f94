package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pagesim/pkg/config"
	"pagesim/pkg/logger"
	"pagesim/pkg/session"
)

const CatalogFile = "catalog.json"

func main() {
	configPath := flag.String("config", "", "server config file (JSON)")
	scenarioPath := flag.String("scenario", "", "run a scenario file (YAML) once and exit")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
	}

	closer, err := logger.Init(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	if *scenarioPath != "" {
		if err := runScenario(*scenarioPath); err != nil {
			slog.Error("scenario failed", "file", *scenarioPath, "error", err)
			closer.Close()
			os.Exit(1)
		}
		return
	}

	if err := serve(cfg); err != nil {
		slog.Error("server stopped", "error", err)
		closer.Close()
		os.Exit(1)
	}
}

// runScenario simulates one scenario file and prints every view of the result.
func runScenario(path string) error {
	sc, err := session.LoadScenarioFile(path)
	if err != nil {
		return err
	}
	res, err := sc.Run()
	if err != nil {
		return err
	}
	session.WriteProcesses(os.Stdout, sc.Processes)
	session.WriteSummary(os.Stdout, res)
	session.WriteTimeline(os.Stdout, res)
	session.WriteFaults(os.Stdout, res)
	session.WriteGantt(os.Stdout, res)
	return nil
}

func serve(cfg config.ServerConfig) error {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return err
	}
	catalog, err := session.NewCatalog(filepath.Join(cfg.DataDir, CatalogFile))
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", cfg.Port)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Port, err)
	}
	slog.Info("pagesim listening", "addr", listener.Addr().String(), "data_dir", cfg.DataDir)

	for {
		conn, err := listener.Accept()
		if err != nil {
			slog.Warn("connection accept error", "error", err)
			continue
		}
		go handleClient(conn, session.NewSession(catalog, cfg))
	}
}

func handleClient(conn net.Conn, s *session.Session) {
	clientAddr := conn.RemoteAddr().String()
	slog.Info("new connection", "client", clientAddr)
	defer conn.Close()

	parser := session.NewCommandParser(s, conn)
	conn.Write([]byte("Welcome to pagesim! Type 'help' for commands.\npagesim> "))

	reader := bufio.NewReader(conn)
	for {
		input, err := reader.ReadString('\n')
		if err != nil {
			slog.Info("client disconnected", "client", clientAddr)
			return
		}

		line := strings.TrimSpace(input)
		if line == "" {
			conn.Write([]byte("pagesim> "))
			continue
		}
		if strings.EqualFold(line, "quit") || strings.EqualFold(line, "exit") {
			return
		}

		slog.Info("exec", "client", clientAddr, "command", line)
		start := time.Now()
		err = parser.ParseAndExecute(line)
		duration := time.Since(start)

		if err != nil {
			slog.Warn("command failed", "client", clientAddr, "command", line, "error", err)
			conn.Write([]byte(fmt.Sprintf("Error: %v\n", err)))
		} else {
			conn.Write([]byte(fmt.Sprintf("(%.4f sec)\n", duration.Seconds())))
		}
		conn.Write([]byte("pagesim> "))
	}
}

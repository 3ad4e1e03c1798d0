// Command mqsh is a tiny line-oriented shell over the mosmq message-queue
// core, for manual testing and demos: it drives mq_open/mq_send/mq_receive/
// mq_close/mq_unlink against one in-process Context from stdin commands.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/dfischer/mosmq"
	"github.com/dfischer/mosmq/internal/dispatch"
	"github.com/dfischer/mosmq/internal/metrics"
	"github.com/dfischer/mosmq/internal/sched"
)

func main() {
	var configPath = pflag.StringP("config", "c", "", "Path to a YAML config file overriding default queue attributes.")
	var verbose = pflag.BoolP("verbose", "v", false, "Enable debug logging.")
	var withMetrics = pflag.BoolP("metrics", "m", false, "Register a Prometheus collector for opened queues (not served over HTTP).")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "mqsh - interactive shell over an in-process message-queue kernel.\n\n")
		fmt.Fprintf(os.Stderr, "Commands (one per line):\n")
		fmt.Fprintf(os.Stderr, "  open   <name> [nonblock]\n")
		fmt.Fprintf(os.Stderr, "  send   <fd> <priority> <text>\n")
		fmt.Fprintf(os.Stderr, "  recv   <fd> <priority>\n")
		fmt.Fprintf(os.Stderr, "  close  <fd>\n")
		fmt.Fprintf(os.Stderr, "  unlink <name>\n")
		fmt.Fprintf(os.Stderr, "  quit\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	cliLogger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "mqsh"})
	if *verbose {
		cliLogger.SetLevel(log.DebugLevel)
		mq.SetLogger(cliLogger)
	}

	cfg := mq.Config{}
	if *configPath != "" {
		loaded, err := mq.LoadConfig(*configPath)
		if err != nil {
			log.Fatal("loading config", "err", err)
		}
		cfg = loaded
	}

	registry := mq.NewRegistry()
	if *withMetrics {
		registry.EnableMetrics(metrics.NewCollector())
	}
	ctx := mq.NewContext(registry)
	table := dispatch.New()
	thread := sched.NewThreadID()

	defaultAttr := cfg.Attr()

	fmt.Println("mqsh ready. Type 'quit' to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("mqsh> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, " ", 2)
		cmd := fields[0]

		switch cmd {
		case "quit", "exit":
			return

		case "open":
			args := strings.Fields(valueOf(fields))
			if len(args) < 1 {
				fmt.Println("usage: open <name> [nonblock]")
				continue
			}
			flags := int32(0)
			if len(args) > 1 && args[1] == "nonblock" {
				flags = mq.NonBlock
			}
			attr := defaultAttr
			ret, errno := table.Dispatch(ctx, dispatch.SysMqOpen, args[0], flags, attr)
			report("open", ret, errno)

		case "send":
			args := strings.SplitN(valueOf(fields), " ", 3)
			if len(args) < 3 {
				fmt.Println("usage: send <fd> <priority> <text>")
				continue
			}
			fd, priority, err := parseFdPriority(args[0], args[1])
			if err != nil {
				fmt.Println(err)
				continue
			}
			ret, errno := table.Dispatch(ctx, dispatch.SysMqSend, thread, fd, []byte(args[2]), priority)
			report("send", ret, errno)

		case "recv":
			args := strings.Fields(valueOf(fields))
			if len(args) < 2 {
				fmt.Println("usage: recv <fd> <priority>")
				continue
			}
			fd, priority, err := parseFdPriority(args[0], args[1])
			if err != nil {
				fmt.Println(err)
				continue
			}
			buf := make([]byte, defaultAttr.MsgSize)
			ret, errno := table.Dispatch(ctx, dispatch.SysMqReceive, thread, fd, buf, priority)
			if errno == 0 {
				fmt.Printf("recv: %q\n", buf[:ret])
			} else {
				report("recv", ret, errno)
			}

		case "close":
			args := strings.Fields(valueOf(fields))
			if len(args) < 1 {
				fmt.Println("usage: close <fd>")
				continue
			}
			fd, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Println("bad fd:", err)
				continue
			}
			ret, errno := table.Dispatch(ctx, dispatch.SysMqClose, fd)
			report("close", ret, errno)

		case "unlink":
			args := strings.Fields(valueOf(fields))
			if len(args) < 1 {
				fmt.Println("usage: unlink <name>")
				continue
			}
			ret, errno := table.Dispatch(ctx, dispatch.SysMqUnlink, args[0])
			report("unlink", ret, errno)

		default:
			fmt.Printf("unknown command %q\n", cmd)
		}
	}
}

func valueOf(fields []string) string {
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

func parseFdPriority(fdStr, priorityStr string) (int, uint32, error) {
	fd, err := strconv.Atoi(fdStr)
	if err != nil {
		return 0, 0, fmt.Errorf("bad fd: %w", err)
	}
	priority, err := strconv.ParseUint(priorityStr, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("bad priority: %w", err)
	}
	return fd, uint32(priority), nil
}

func report(op string, ret int64, errno int32) {
	if errno != 0 {
		fmt.Printf("%s: errno=%d\n", op, errno)
		return
	}
	fmt.Printf("%s: %d\n", op, ret)
}

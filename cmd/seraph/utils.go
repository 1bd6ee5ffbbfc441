// Copyright (c) 2025 The Seraph developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/gagliardetto/solana-go"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/Eliascm17/seraph/api/subscriptions"
	"github.com/Eliascm17/seraph/builtin/seraph"
	"github.com/Eliascm17/seraph/genesis"
	"github.com/Eliascm17/seraph/log"
	"github.com/Eliascm17/seraph/logdb"
	"github.com/Eliascm17/seraph/lvldb"
	"github.com/Eliascm17/seraph/native/history"
	"github.com/Eliascm17/seraph/native/stake"
	"github.com/Eliascm17/seraph/native/system"
	seraphrt "github.com/Eliascm17/seraph/runtime"
)

func fatal(args ...any) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		} else {
			w = io.MultiWriter(os.Stdout, os.Stderr)
		}
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

func initLogger(ctx *cli.Context) {
	level := new(slog.LevelVar)
	level.Set(log.FromLegacyLevel(ctx.GlobalInt(verbosityFlag.Name)))

	var handler slog.Handler
	if ctx.GlobalBool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stdout, level)
	} else {
		fd := os.Stderr.Fd()
		useColor := (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".seraph")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func makeDataDir(ctx *cli.Context) string {
	dataDir := ctx.GlobalString(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", dataDir, err))
	}
	return dataDir
}

func makeInstanceDir(dataDir string, gene *genesis.Genesis) string {
	id := gene.ID()
	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", id[24:]))
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		fatal(fmt.Sprintf("create instance dir [%v]: %v", instanceDir, err))
	}
	return instanceDir
}

// loadKey reads the admin key, generating and saving a new one if the file does not exist.
func loadKey(keyFile string) (solana.PrivateKey, error) {
	data, err := os.ReadFile(keyFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		key, err := solana.NewRandomPrivateKey()
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(keyFile, []byte(key.String()+"\n"), 0o600); err != nil {
			return nil, err
		}
		return key, nil
	}

	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("[")) {
		return solana.PrivateKeyFromSolanaKeygenFile(keyFile)
	}
	return solana.PrivateKeyFromBase58(string(data))
}

func adminKey(ctx *cli.Context, dataDir string) solana.PrivateKey {
	keyFile := ctx.GlobalString(keyFileFlag.Name)
	if keyFile == "" {
		keyFile = filepath.Join(dataDir, "admin.key")
	}
	key, err := loadKey(keyFile)
	if err != nil {
		fatal(fmt.Sprintf("load admin key [%v]: %v", keyFile, err))
	}
	return key
}

func selectGenesis(ctx *cli.Context, admin solana.PublicKey) *genesis.Genesis {
	path := ctx.GlobalString(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet(admin)
	}
	desc, err := genesis.Load(path)
	if err != nil {
		fatal(fmt.Sprintf("load genesis [%v]: %v", path, err))
	}
	gene, err := genesis.NewCustomNet(desc)
	if err != nil {
		fatal(fmt.Sprintf("genesis [%v]: %v", path, err))
	}
	return gene
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		fatal("failed to get fd limit:", err)
	}
	if limit <= 1024 {
		log.Warn("low fd limit, increase it if possible", "limit", limit)
	}

	n := limit / 2
	if n > 5120 {
		return 5120
	}
	return n
}

func openMainDB(instanceDir string) *lvldb.LevelDB {
	path := filepath.Join(instanceDir, "main.db")
	db, err := lvldb.New(path, lvldb.Options{
		CacheSize:              128,
		OpenFilesCacheCapacity: suggestFDCache(),
	})
	if err != nil {
		fatal(fmt.Sprintf("open main database [%v]: %v", path, err))
	}
	return db
}

func openLogDB(instanceDir string) *logdb.LogDB {
	path := filepath.Join(instanceDir, "logs.db")
	db, err := logdb.New(path)
	if err != nil {
		fatal(fmt.Sprintf("open log database [%v]: %v", path, err))
	}
	return db
}

// node bundles everything a command needs.
type node struct {
	admin   solana.PrivateKey
	gene    *genesis.Genesis
	rt      *seraphrt.Runtime
	mainDB  *lvldb.LevelDB
	logDB   *logdb.LogDB
	events  *subscriptions.Hub
	program *seraph.Program
}

func (n *node) Close() {
	if n.logDB != nil {
		log.Info("closing log database...")
		n.logDB.Close()
	}
	log.Info("closing main database...")
	n.mainDB.Close()
}

func openNode(ctx *cli.Context) *node {
	initLogger(ctx)
	dataDir := makeDataDir(ctx)
	admin := adminKey(ctx, dataDir)
	gene := selectGenesis(ctx, admin.PublicKey())
	instanceDir := makeInstanceDir(dataDir, gene)

	n := &node{
		admin:   admin,
		gene:    gene,
		mainDB:  openMainDB(instanceDir),
		events:  subscriptions.NewHub(),
		program: seraph.New(seraph.Config{MinTenureEpochs: ctx.GlobalUint64(minTenureFlag.Name)}),
	}

	sinks := seraphrt.Sinks{n.events}
	if !ctx.GlobalBool(skipLogsFlag.Name) {
		n.logDB = openLogDB(instanceDir)
		sinks = append(seraphrt.Sinks{n.logDB}, sinks...)
	}

	rt, err := seraphrt.New(n.mainDB, sinks, system.New(), stake.New(), history.New(), n.program)
	if err != nil {
		fatal("open runtime:", err)
	}
	fresh, err := gene.Setup(rt, n.mainDB)
	if err != nil {
		fatal("setup genesis:", err)
	}
	if fresh {
		log.Info("genesis built", "name", gene.Name(), "id", gene.ID())
	}
	n.rt = rt
	log.Debug("node opened", "dir", instanceDir, "admin", admin.PublicKey(), "clock", rt.Clock())
	return n
}

// submit signs the instructions with the admin key and extra signers and executes them in one transaction.
func (n *node) submit(extra []solana.PrivateKey, ixs ...*seraphrt.Instruction) (*seraphrt.Receipt, error) {
	tx := seraphrt.NewTransaction(ixs...)
	if err := tx.Sign(append([]solana.PrivateKey{n.admin}, extra...)...); err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return n.rt.Execute(tx)
}

func parsePublicKey(ctx *cli.Context, flag cli.StringFlag) (solana.PublicKey, error) {
	s := strings.TrimSpace(ctx.String(flag.Name))
	if s == "" {
		return solana.PublicKey{}, fmt.Errorf("-%s is required", flag.Name)
	}
	key, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, errors.WithMessagef(err, "-%s", flag.Name)
	}
	return key, nil
}

func startServer(addr string, handler http.Handler, name string) (string, func()) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fatal(fmt.Sprintf("listen %s addr [%v]: %v", name, addr, err))
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("server stopped", "name", name, "err", err)
		}
	}()
	return "http://" + listener.Addr().String() + "/", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		log.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

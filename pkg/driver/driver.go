// Package driver runs programs written against the request/response I/O
// protocol. A program is a pair [request, continuation]; the driver serves
// the request, passes the result to the continuation and repeats with the
// pair it returns until the program asks to finish.
package driver

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"ferrum/runtime-go/pkg/bridge"
	"ferrum/runtime-go/pkg/fatal"
	"ferrum/runtime-go/pkg/omap"
	"ferrum/runtime-go/pkg/runtime"
)

// Driver serves I/O requests against its file and environment collaborators.
type Driver struct {
	FS         billy.Basic
	Env        Env
	Stdout     io.Writer
	Logger     *slog.Logger
	BaseDirEnv string

	store *omap.Map
}

// New builds a driver over the operating system. cfg.Root, when set, scopes
// file requests to that directory.
func New(cfg *Config, stdout io.Writer, logger *slog.Logger) *Driver {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	var fs billy.Basic = osfs.Default
	if cfg.Root != "" {
		fs = osfs.New(cfg.Root)
	}
	return &Driver{
		FS:         fs,
		Env:        OSEnv{},
		Stdout:     stdout,
		Logger:     logger,
		BaseDirEnv: cfg.BaseDirEnv,
	}
}

func (d *Driver) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d.Logger
}

// Primitive returns the driver as a tagged function of the program pair.
func (d *Driver) Primitive(args []string) runtime.Any {
	return bridge.Closure(func(env any, program runtime.Any) runtime.Any {
		return env.(*Driver).Run(args, program)
	}, d)
}

// Run serves requests until a done or exit request, whose argument is
// returned. Malformed or unknown requests are fatal.
func (d *Driver) Run(args []string, program runtime.Any) runtime.Any {
	log := d.logger()
	if d.store == nil {
		d.store = omap.New()
	}
	rr := program
	for {
		req, k := runtime.MatchTuple2(rr)
		name, reqArgs := runtime.MatchPair(req)
		reqName := runtime.ToStr(name).Data
		log.Debug("C_IO", slog.String("request", reqName), slog.String("args", runtime.Show(reqArgs)))

		var result runtime.Any
		switch reqName {
		case "readFile":
			data, err := util.ReadFile(d.FS, d.fileName(reqArgs))
			if err != nil {
				panic(fatal.Newf("readFile: failed to read file: %s: %v", runtime.Show(runtime.Head(reqArgs)), err))
			}
			result = runtime.FromStr(string(data))
		case "readFile2":
			data, err := util.ReadFile(d.FS, d.fileName(reqArgs))
			if err != nil {
				result = runtime.MkList(runtime.FromStatic("Error"), runtime.FromStr(err.Error()))
			} else {
				result = runtime.MkList(runtime.FromStatic("Ok"), runtime.FromStr(string(data)))
			}
		case "writeFile":
			filename, contents := runtime.MatchTuple2(reqArgs)
			path := runtime.ToStr(filename).Data
			if err := util.WriteFile(d.FS, path, []byte(runtime.ToStr(contents).Data), 0o644); err != nil {
				panic(fatal.Newf("writeFile: failed to write file: %s: %v", runtime.Show(filename), err))
			}
			result = runtime.Nil()
		case "print":
			arg := runtime.MatchTuple1(reqArgs)
			fmt.Fprintln(d.Stdout, runtime.Show(arg))
			result = runtime.Nil()
		case "getArgs":
			runtime.MatchNil(reqArgs)
			elems := make([]runtime.Any, len(args))
			for i, a := range args {
				elems[i] = runtime.FromStr(a)
			}
			result = runtime.MkList(elems...)
		case "getFerrumDir":
			dir, ok := d.lookupEnv(d.BaseDirEnv)
			if !ok {
				panic(fatal.Newf("getFerrumDir: environment variable %s is not set", d.BaseDirEnv))
			}
			result = runtime.MkList(runtime.FromStr(dir))
		case "getEnvVar":
			varName := runtime.ToStr(runtime.MatchTuple1(reqArgs)).Data
			if v, ok := d.lookupEnv(varName); ok {
				result = runtime.MkList(runtime.FromStr(v))
			} else {
				result = runtime.Nil()
			}
		case "get":
			key, mkInit := runtime.MatchTuple2(reqArgs)
			if v, ok := d.store.Get(key); ok {
				result = v
			} else {
				result = runtime.Call(mkInit, runtime.Nil())
			}
		case "set":
			key, val := runtime.MatchTuple2(reqArgs)
			d.store.Set(key, val)
			result = runtime.Nil()
		case "done", "exit":
			exit := runtime.MatchTuple1(reqArgs)
			log.Debug("C_IO finished", slog.String("request", reqName), slog.String("value", runtime.Show(exit)))
			return exit
		default:
			panic(fatal.Newf("ioDo: unknown request: %s", runtime.Show(name)))
		}
		rr = runtime.Call(k, result)
	}
}

func (d *Driver) fileName(reqArgs runtime.Any) string {
	return runtime.ToStr(runtime.MatchTuple1(reqArgs)).Data
}

func (d *Driver) lookupEnv(name string) (string, bool) {
	if d.Env == nil {
		return "", false
	}
	return d.Env.Lookup(name)
}

// Session returns the value stored under key by earlier set requests.
func (d *Driver) Session(key runtime.Any) (runtime.Any, bool) {
	if d.store == nil {
		return runtime.Any{}, false
	}
	return d.store.Get(key)
}

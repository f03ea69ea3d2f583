// Package spawn runs IDL commands in child processes and reports whether they
// ran to completion, alone or through a bounded queue.
package spawn

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ansel1/merry"
	"github.com/google/uuid"
	"github.com/powerman/structlog"
)

//FinishedMessage is printed by IDL as the last statement of every job.
//A job only counts as done when this line shows up in its output.
const FinishedMessage = "spawnIDL FINISHED!!!"

var (
	ErrEmptyCommand = merry.New("empty IDL command")
	ErrStarted      = merry.New("job already started")
	ErrNotStarted   = merry.New("job not started")
	ErrUnfinished   = merry.New("IDL did not report completion")
)

var log = structlog.New()

//Options of a Job
type Options struct {
	Executable  string            //IDL binary, "idl" when empty
	Dir         string            //Working directory, the home directory when empty
	UTC         bool              //Pass time.Time variables in UTC
	StdoutLevel string            //structlog level for stdout lines, INF when empty
	StderrLevel string            //structlog level for stderr lines, DBG when empty
	Logger      *structlog.Logger //Logger for process output, the package logger when nil
}

//Job is a single IDL command line
type Job struct {
	ID      string
	Command string   //The statement list passed to IDL -e
	Args    []string //Full argument vector, executable first
	IsFunc  bool     //The command calls a function, i.e. has arguments in parentheses

	opts     Options
	log      *structlog.Logger
	started  atomic.Bool
	running  atomic.Bool
	finished atomic.Bool
	done     chan struct{}
	err      error
}

var funcArgsRegexp = regexp.MustCompile(`\((.*)\)`)

//NewJob builds a job for an IDL procedure or function call. Variables
//referenced by the call's arguments, keywords included, are looked up in vars
//and assigned before the call:
//
//	time.Time  name = READ_ISO_DATE_STRING('2006-01-02T15:04:05')
//	bool       name = 1 or 0
//	string     name = 'value', directories get a trailing separator
//	others     name = value, formatted with %v
//
//Names are case sensitive. Variables not referenced are ignored.
func NewJob(cmd string, vars map[string]interface{}, opts Options) (*Job, error) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil, ErrEmptyCommand
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, merry.Prepend(err, "job id")
	}
	if opts.Executable == "" {
		opts.Executable = "idl"
	}
	if opts.StdoutLevel == "" {
		opts.StdoutLevel = "inf"
	}
	if opts.StderrLevel == "" {
		opts.StderrLevel = "dbg"
	}
	if opts.Logger == nil {
		opts.Logger = log
	}

	j := &Job{ID: id.String(), opts: opts, done: make(chan struct{})}
	j.log = opts.Logger.New("job", j.ID)

	var args []string
	if m := funcArgsRegexp.FindStringSubmatch(cmd); m != nil {
		j.IsFunc = true
		args = strings.Split(m[1], ",")
	} else {
		args = strings.Split(cmd, ",")[1:]
	}

	var stmts []string
	for _, arg := range args {
		parts := strings.Split(arg, "=")
		name := strings.TrimSpace(parts[len(parts)-1])
		val, ok := vars[name]
		if !ok || val == nil {
			continue
		}
		stmts = append(stmts, assignment(name, val, opts.UTC))
	}
	stmts = append(stmts, cmd, fmt.Sprintf("MESSAGE, '%s', /CONTINUE", FinishedMessage))

	j.Command = strings.Join(stmts, " & ")
	j.Args = []string{opts.Executable, "-e", j.Command}
	j.log.Debug("IDL command", "args", strings.Join(j.Args, " "))
	return j, nil
}

func assignment(name string, val interface{}, utc bool) string {
	switch v := val.(type) {
	case time.Time:
		return fmt.Sprintf("%s = READ_ISO_DATE_STRING('%s')", name, isoDate(v, utc))
	case bool:
		if v {
			return name + " = 1"
		}
		return name + " = 0"
	case string:
		if fi, err := os.Stat(v); err == nil && fi.IsDir() && !strings.HasSuffix(v, string(filepath.Separator)) {
			v += string(filepath.Separator)
		}
		return fmt.Sprintf("%s = '%s'", name, v)
	default:
		return fmt.Sprintf("%s = %v", name, v)
	}
}

func isoDate(t time.Time, utc bool) string {
	if utc {
		return t.UTC().Format("2006-01-02T15:04:05Z")
	}
	return t.Format("2006-01-02T15:04:05")
}

//Start launches the process and returns without waiting for it.
//Cancelling ctx kills the process. When Start fails Wait returns the same error.
func (j *Job) Start(ctx context.Context) error {
	if !j.started.CompareAndSwap(false, true) {
		return merry.Append(ErrStarted, j.ID)
	}
	if err := j.start(ctx); err != nil {
		j.err = err
		close(j.done)
		return err
	}
	return nil
}

func (j *Job) start(ctx context.Context) error {
	dir := j.opts.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return merry.Prepend(err, "IDL working directory")
		}
		dir = home
	}

	cmd := exec.CommandContext(ctx, j.Args[0], j.Args[1:]...)
	cmd.Dir = dir
	cmd.Env = environ()
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return merry.Wrap(err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return merry.Wrap(err)
	}
	if err := cmd.Start(); err != nil {
		return merry.Prependf(err, "start %s", j.opts.Executable)
	}
	j.running.Store(true)
	j.log.Debug("started", "pid", cmd.Process.Pid)

	var wg sync.WaitGroup
	wg.Add(2)
	go j.drain(&wg, stdout, j.opts.StdoutLevel)
	go j.drain(&wg, stderr, j.opts.StderrLevel)
	go func() {
		wg.Wait()
		j.err = cmd.Wait()
		j.running.Store(false)
		close(j.done)
	}()
	return nil
}

//environ returns the process environment with IDL_STARTUP pointing at
//~/startup.pro when it is not set and that file exists.
func environ() []string {
	env := os.Environ()
	if _, ok := os.LookupEnv("IDL_STARTUP"); ok {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return env
	}
	startup := filepath.Join(home, "startup.pro")
	if fi, err := os.Stat(startup); err == nil && fi.Mode().IsRegular() {
		log.Debug("using startup file", "path", startup)
		env = append(env, "IDL_STARTUP="+startup)
	}
	return env
}

func (j *Job) drain(wg *sync.WaitGroup, r io.Reader, level string) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		logAt(j.log, level, line)
		if strings.Contains(line, FinishedMessage) {
			j.finished.Store(true)
		}
	}
	if err := scanner.Err(); err != nil {
		j.log.PrintErr(err)
	}
}

func logAt(l *structlog.Logger, level, line string) {
	switch structlog.ParseLevel(level) {
	case structlog.DBG:
		l.Debug(line)
	case structlog.WRN:
		l.Warn(line)
	case structlog.ERR:
		l.PrintErr(line)
	default:
		l.Info(line)
	}
}

//Wait blocks until the process exited. It returns nil only if IDL printed
//FinishedMessage, otherwise the exit error or ErrUnfinished.
func (j *Job) Wait() error {
	if !j.started.Load() {
		return merry.Append(ErrNotStarted, j.ID)
	}
	<-j.done
	if j.finished.Load() {
		return nil
	}
	if j.err != nil {
		return merry.Prependf(j.err, "IDL job %s", j.ID)
	}
	return merry.Append(ErrUnfinished, j.ID)
}

//Running reports if the process is still alive
func (j *Job) Running() bool {
	return j.running.Load()
}

//Finished reports if FinishedMessage was seen so far
func (j *Job) Finished() bool {
	return j.finished.Load()
}

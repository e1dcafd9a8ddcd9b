// Package console is the line-oriented front end of the tracker.
//
// Each line is a command word, an optional sub-command and an argument
// string. Entity arguments are positional fields separated by "/", with "@"
// standing for "leave unchanged" or "not provided":
//
//	task add fix login/2/m01,m02/2027-07-22
//	task update t01/@/3/@/@
//	task find 1,BUG 2,DONE
//	member add ann/1
//	member find 1 4
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"project-team-tracker/internal/convert"
	"project-team-tracker/internal/logger"
	"project-team-tracker/internal/models"
	"project-team-tracker/internal/services"

	"go.uber.org/zap"
)

const prompt = "> "

const helpText = `commands:
  task add <name>/<type>/<assignees|@>/<yyyy-MM-dd|@>
  task update <tid>/<name|@>/<status|@>/<assignees|@>/<yyyy-MM-dd|@>
  task get <tid> | task rm <tid> | task list | task stats
  task find <kind,value>...      kinds: 1 type, 2 status, 3 assignee
  member add <name>/<auth>
  member update <mid>/<name|@>/<auth|@>/<tasks|@>
  member get <mid> | member rm <mid> | member list | member stats
  member find <selector>...      1 admin, 2 member, 3 viewer, 4 assigned, 5 unassigned, @ all
  unassign <tid> <mid>
  overview | clear | help | quit`

// Console runs commands against the services and writes results to out.
type Console struct {
	svc    *services.Services
	out    io.Writer
	logger *zap.Logger
}

func New(svc *services.Services, out io.Writer, log *zap.Logger) *Console {
	if log == nil {
		log = zap.NewNop()
	}
	return &Console{svc: svc, out: out, logger: log.Named("console")}
}

// Run reads commands from in until quit, end of input or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(c.out)
			return scanner.Err()
		}
		if quit := c.Exec(ctx, scanner.Text()); quit {
			return nil
		}
	}
}

// Exec runs a single command line and reports whether it asked to quit.
func (c *Console) Exec(ctx context.Context, line string) bool {
	word, rest := cut(line)
	var err error
	switch word {
	case "":
	case "quit", "exit":
		return true
	case "help":
		c.println(helpText)
	case "clear":
		fmt.Fprint(c.out, ClearScreen)
	case "overview":
		err = c.overview(ctx)
	case "unassign":
		args := strings.Fields(rest)
		if len(args) != 2 {
			err = fmt.Errorf("%w: unassign takes <tid> <mid>", convert.ErrInvalidInput)
			break
		}
		if err = c.svc.Tasks.Unassign(ctx, args[0], args[1]); err == nil {
			c.println("unassigned " + args[1] + " from " + args[0])
		}
	case "task":
		err = c.task(ctx, rest)
	case "member":
		err = c.member(ctx, rest)
	default:
		err = fmt.Errorf("%w: unknown command %q, try help", convert.ErrInvalidInput, word)
	}
	if err != nil {
		c.report(word, err)
	}
	return false
}

func (c *Console) task(ctx context.Context, args string) error {
	sub, rest := cut(args)
	switch sub {
	case "add":
		in, err := ParseTaskCreate(SplitFields(rest))
		if err != nil {
			return err
		}
		task, err := c.svc.Tasks.Create(ctx, in)
		if err != nil {
			return err
		}
		c.println("created " + task.ID)
	case "update":
		tid, in, err := ParseTaskUpdate(SplitFields(rest))
		if err != nil {
			return err
		}
		if err := c.svc.Tasks.Update(ctx, tid, in); err != nil {
			return err
		}
		c.println("updated " + tid)
	case "get":
		task, err := c.svc.Tasks.Get(ctx, rest)
		if err != nil {
			return err
		}
		if task == nil {
			c.println(unknown)
			return nil
		}
		return c.printTask(ctx, *task)
	case "rm":
		if err := c.svc.Tasks.Remove(ctx, rest); err != nil {
			return err
		}
		c.println("removed " + rest)
	case "list":
		tasks, err := c.svc.Tasks.List(ctx)
		if err != nil {
			return err
		}
		for _, t := range tasks {
			if err := c.printTask(ctx, t); err != nil {
				return err
			}
		}
	case "find":
		criteria, err := ParseTaskCriteria(strings.Fields(rest))
		if err != nil {
			return err
		}
		seq, err := c.svc.Tasks.Filter(ctx, criteria)
		if err != nil {
			return err
		}
		for t := range seq {
			if err := c.printTask(ctx, t); err != nil {
				return err
			}
		}
	case "stats":
		counts, err := c.svc.Tasks.CountByStatus(ctx)
		if err != nil {
			return err
		}
		c.println(renderStatusCount(counts))
	default:
		return fmt.Errorf("%w: unknown task command %q", convert.ErrInvalidInput, sub)
	}
	return nil
}

func (c *Console) member(ctx context.Context, args string) error {
	sub, rest := cut(args)
	switch sub {
	case "add":
		in, err := ParseMemberCreate(SplitFields(rest))
		if err != nil {
			return err
		}
		member, err := c.svc.Members.Create(ctx, in)
		if err != nil {
			return err
		}
		c.println("created " + member.ID)
	case "update":
		mid, in, err := ParseMemberUpdate(SplitFields(rest))
		if err != nil {
			return err
		}
		if err := c.svc.Members.Update(ctx, mid, in); err != nil {
			return err
		}
		c.println("updated " + mid)
	case "get":
		member, err := c.svc.Members.Get(ctx, rest)
		if err != nil {
			return err
		}
		if member == nil {
			c.println(unknown)
			return nil
		}
		return c.printMember(ctx, *member)
	case "rm":
		if err := c.svc.Members.Remove(ctx, rest); err != nil {
			return err
		}
		c.println("removed " + rest)
	case "list":
		members, err := c.svc.Members.List(ctx)
		if err != nil {
			return err
		}
		for _, m := range members {
			if err := c.printMember(ctx, m); err != nil {
				return err
			}
		}
	case "find":
		seq, err := c.svc.Members.Filter(ctx, ParseMemberSelectors(strings.Fields(rest))...)
		if err != nil {
			return err
		}
		for m := range seq {
			if err := c.printMember(ctx, m); err != nil {
				return err
			}
		}
	case "stats":
		counts, err := c.svc.Members.CountAssignment(ctx)
		if err != nil {
			return err
		}
		c.println(renderAssignmentCount(counts))
	default:
		return fmt.Errorf("%w: unknown member command %q", convert.ErrInvalidInput, sub)
	}
	return nil
}

func (c *Console) overview(ctx context.Context) error {
	tasks, err := c.svc.Tasks.CountByStatus(ctx)
	if err != nil {
		return err
	}
	members, err := c.svc.Members.CountAssignment(ctx)
	if err != nil {
		return err
	}
	c.println("tasks:   " + renderStatusCount(tasks))
	c.println("members: " + renderAssignmentCount(members))
	return nil
}

func (c *Console) printTask(ctx context.Context, t models.Task) error {
	assignees, err := c.svc.Tasks.Assignees(ctx, t.ID)
	if err != nil {
		return err
	}
	c.println(RenderTask(t, assignees))
	return nil
}

func (c *Console) printMember(ctx context.Context, m models.Member) error {
	tasks, err := c.svc.Members.Tasks(ctx, m.ID)
	if err != nil {
		return err
	}
	c.println(RenderMember(m, tasks))
	return nil
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

// report prints err for the operator. Store failures were already logged by
// the services.
func (c *Console) report(cmd string, err error) {
	switch {
	case errors.Is(err, convert.ErrInvalidInput):
		c.println("error: " + err.Error())
	case services.IsStoreError(err):
		c.println("error: storage unavailable, see log")
	default:
		c.logger.Error("command failed", logger.Op(cmd), zap.Error(err))
		c.println("error: " + err.Error())
	}
}

// cut splits off the first whitespace-delimited word.
func cut(s string) (string, string) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

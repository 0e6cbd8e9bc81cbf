// jyardchess - interactive terminal front end for the move legality engine
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/vasrot/jyardchess/internal/board"
	"github.com/vasrot/jyardchess/internal/game"
	"github.com/vasrot/jyardchess/internal/rules"
	"github.com/vasrot/jyardchess/internal/storage"
)

var (
	layoutFlag = flag.String("layout", "", "custom starting layout (piece placement with optional side and castling fields)")
	dbFlag     = flag.String("db", "", "database directory (default: platform data dir)")
	memFlag    = flag.Bool("mem", false, "run without persistence")
	resumeFlag = flag.String("resume", "", "resume a stored game by id")
)

var (
	okColor   = color.New(color.FgGreen)
	badColor  = color.New(color.FgRed)
	warnColor = color.New(color.FgYellow)
	endColor  = color.New(color.FgCyan, color.Bold)
)

func main() {
	flag.Parse()

	var store *storage.Store
	if !*memFlag {
		var err error
		store, err = storage.Open(*dbFlag)
		if err != nil {
			log.Fatalf("open storage: %v", err)
		}
		defer store.Close()
	}

	svc := game.NewService(store)

	id := *resumeFlag
	if id == "" {
		var err error
		id, err = svc.Create(*layoutFlag)
		if err != nil {
			log.Fatalf("create game: %v", err)
		}
		fmt.Printf("new game %s\n", id)
	} else {
		if _, err := svc.Board(id); err != nil {
			log.Fatalf("resume game %s: %v", id, err)
		}
		fmt.Printf("resumed game %s\n", id)
	}

	printBoard(svc, id)
	repl(svc, id)
}

func repl(svc *game.Service, id string) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		b, err := svc.Board(id)
		if err != nil {
			log.Fatalf("load game: %v", err)
		}
		fmt.Printf("%s> ", b.ActiveSide())

		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(strings.ToLower(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return
		case "show":
			printBoard(svc, id)
		case "moves":
			doMoves(svc, id, fields[1:])
		case "promote":
			doPromote(svc, id, fields[1:])
		case "move":
			if doMove(svc, id, fields[1:]) {
				return
			}
		case "help":
			fmt.Println("commands: move <from> <to>, moves <from>, promote <square> <q|r|b|n>, show, quit")
		default:
			// Bare "e2 e4" works too.
			if doMove(svc, id, fields) {
				return
			}
		}
	}
}

// doMove submits a move and reports the verdict. Returns true once the
// game reaches a terminal state.
func doMove(svc *game.Service, id string, args []string) bool {
	if len(args) != 2 {
		warnColor.Println("usage: move <from> <to>")
		return false
	}
	from, err := board.ParseSquare(args[0])
	if err != nil {
		badColor.Println(err)
		return false
	}
	to, err := board.ParseSquare(args[1])
	if err != nil {
		badColor.Println(err)
		return false
	}

	result, err := svc.Move(id, from, to)
	if err != nil {
		badColor.Println(err)
		return result.End.Terminal()
	}

	if !result.Status.IsValid() {
		badColor.Printf("%s %s: %s\n", from, to, result.Status)
		return false
	}

	okColor.Printf("%s %s: %s (%s)\n", from, to, result.Status, result.Kind)
	printBoard(svc, id)

	if result.Kind == board.MovePawnPromotion {
		warnColor.Println("promotion pending: promote <square> <q|r|b|n>")
	}
	if result.KingStatus == rules.KingCheck {
		warnColor.Println("check")
	}
	if result.End.Terminal() {
		endColor.Println(result.End.Cause())
		return true
	}
	return false
}

func doMoves(svc *game.Service, id string, args []string) {
	if len(args) != 1 {
		warnColor.Println("usage: moves <from>")
		return
	}
	from, err := board.ParseSquare(args[0])
	if err != nil {
		badColor.Println(err)
		return
	}

	moves, err := svc.LegalMoves(id, from)
	if err != nil {
		badColor.Println(err)
		return
	}
	if len(moves) == 0 {
		fmt.Printf("%s: no legal moves\n", from)
		return
	}

	names := make([]string, len(moves))
	for i, sq := range moves {
		names[i] = sq.String()
	}
	fmt.Printf("%s: %s\n", from, strings.Join(names, " "))
}

func doPromote(svc *game.Service, id string, args []string) {
	if len(args) != 2 {
		warnColor.Println("usage: promote <square> <q|r|b|n>")
		return
	}
	sq, err := board.ParseSquare(args[0])
	if err != nil {
		badColor.Println(err)
		return
	}
	kind, err := promotionKind(args[1])
	if err != nil {
		badColor.Println(err)
		return
	}

	end, err := svc.Promote(id, sq, kind)
	if err != nil {
		badColor.Println(err)
		return
	}
	okColor.Printf("promoted to %s\n", args[1])
	printBoard(svc, id)
	if end.Terminal() {
		endColor.Println(end.Cause())
	}
}

func promotionKind(name string) (board.PieceKind, error) {
	switch name {
	case "q", "queen":
		return board.Queen, nil
	case "r", "rook":
		return board.Rook, nil
	case "b", "bishop":
		return board.Bishop, nil
	case "n", "knight":
		return board.Knight, nil
	default:
		return board.NoPieceKind, fmt.Errorf("unknown promotion piece %q", name)
	}
}

func printBoard(svc *game.Service, id string) {
	b, err := svc.Board(id)
	if err != nil {
		badColor.Println(err)
		return
	}
	fmt.Println(b)
	fmt.Printf("points: white %d, black %d\n", b.Points(board.White), b.Points(board.Black))
}

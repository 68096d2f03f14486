// Package render draws board positions as SVG diagrams.
package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"chesskit/board"
)

const (
	squareSize = 60
	margin     = 24
	boardSize  = 8 * squareSize
)

const (
	lightFill     = "fill:#f0d9b5"
	darkFill      = "fill:#b58863"
	highlightFill = "fill:#cdd26a"
	labelStyle    = "font-size:14px;font-family:sans-serif;fill:#444"
	pieceStyle    = "font-size:44px;text-anchor:middle;dominant-baseline:central"
)

// Options controls the rendered diagram.
type Options struct {
	// Highlight marks squares, typically the last move's endpoints.
	Highlight board.SquareSet
	// Flipped draws the board from Black's point of view.
	Flipped bool
}

// Board writes an SVG diagram of the position with rank and file
// labels.
func Board(w io.Writer, pos *board.Position, opts Options) {
	canvas := svg.New(w)
	canvas.Start(boardSize+2*margin, boardSize+2*margin)
	canvas.Rect(0, 0, boardSize+2*margin, boardSize+2*margin, "fill:#ffffff")

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := board.SquareAt(file, rank)
			x, y := squareOrigin(file, rank, opts.Flipped)

			fill := darkFill
			if (file+rank)%2 == 1 {
				fill = lightFill
			}
			if opts.Highlight.Contains(sq) {
				fill = highlightFill
			}
			canvas.Rect(x, y, squareSize, squareSize, fill)

			if pc := pos.PieceAt(sq); pc.Kind != board.NoKind {
				canvas.Text(x+squareSize/2, y+squareSize/2, string(pc.Glyph()), pieceStyle)
			}
		}
	}

	for i := 0; i < 8; i++ {
		fileIdx, rankIdx := i, i
		if opts.Flipped {
			fileIdx, rankIdx = 7-i, 7-i
		}
		canvas.Text(margin+i*squareSize+squareSize/2, boardSize+margin+18,
			fmt.Sprintf("%c", 'a'+fileIdx), labelStyle+";text-anchor:middle")
		canvas.Text(margin-14, margin+i*squareSize+squareSize/2+5,
			fmt.Sprintf("%c", '8'-rankIdx), labelStyle)
	}

	canvas.End()
}

// Game renders the game's position with the last move highlighted.
func Game(w io.Writer, g *board.Game) {
	var highlight board.SquareSet
	if last := g.LastMove(); !last.IsNull() {
		highlight = board.NewSquareSet(last.From, last.To)
	}
	Board(w, g.Position(), Options{Highlight: highlight})
}

// squareOrigin maps a square to its top-left pixel. Rank 8 is drawn at
// the top unless the board is flipped.
func squareOrigin(file, rank int, flipped bool) (int, int) {
	if flipped {
		return margin + (7-file)*squareSize, margin + rank*squareSize
	}
	return margin + file*squareSize, margin + (7-rank)*squareSize
}

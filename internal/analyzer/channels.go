// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package analyzer

import (
	"fmt"

	"github.com/zinclang/zinc/internal/ast"
	"github.com/zinclang/zinc/internal/atlas"
	"github.com/zinclang/zinc/internal/token"
	"github.com/zinclang/zinc/internal/types"
)

// resolveSend types a channel send and fixes or checks the channel's
// element type. Element types move from Unknown to concrete exactly
// once; later conflicting evidence is an error.
func (r *Resolver) resolveSend(stmt *ast.SendStmt) {
	valueType := r.exprType(stmt.Value)

	info, ok := r.channelInfos[stmt.Channel]
	if !ok {
		if sym := r.symbols.LookupName(stmt.Channel); sym == nil {
			r.report(UnresolvedReference, stmt.ChanSpan, "send target %q is not defined", stmt.Channel)
		} else if sym.Resolved != types.Channel && sym.Resolved != types.Unknown {
			r.report(StructuralError, stmt.ChanSpan, "send target %q is not a channel (%s)", stmt.Channel, sym.Resolved)
		}
		return
	}

	if info.Element == types.Unknown {
		if valueType != types.Unknown {
			info.Element = valueType
		}
		return
	}
	if valueType != types.Unknown && valueType != info.Element {
		d := r.report(ConflictingEvidence, stmt.Interval(),
			"channel %q carries %s but send value is %s", stmt.Channel, info.Element, valueType)
		d.Evidence = append(d.Evidence,
			fmt.Sprintf("element type fixed to %s by earlier evidence", info.Element),
			fmt.Sprintf("send at %s has value type %s", stmt.Interval(), valueType))
	}
}

// resolveSpawn creates a specialization for the spawned function,
// marks it asynchronous, and hands channel arguments their shared
// channel info so the callee's parameters carry sender types and
// element types fixed in the callee back-flow to the creator.
func (r *Resolver) resolveSpawn(stmt *ast.SpawnStmt) {
	name := ast.CalleeName(stmt.Callee)
	if name == "" || atlas.IsBuiltin(name) {
		r.report(StructuralError, stmt.Interval(), "spawn target must be a user-defined function")
		return
	}

	argTypes := make([]types.Base, 0, len(stmt.Args))
	argChannels := make(map[int]*types.ChannelInfo)
	for i, arg := range stmt.Args {
		argType := r.exprType(arg)
		argTypes = append(argTypes, argType)
		if argType == types.Channel {
			if chanName := ast.CalleeName(arg); chanName != "" {
				if info, ok := r.channelInfos[chanName]; ok {
					argChannels[i] = info
				}
			}
		}
	}

	decl, ok := r.atlas.FunctionDefs[name]
	if !ok {
		r.report(UnresolvedReference, stmt.Interval(), "spawned function %q is not defined", name)
		return
	}
	if hasUnknown(argTypes) {
		r.reportUnknownArgs(stmt.Interval(), name, argTypes)
		return
	}

	mangled := r.atlas.AddSpecialization(name, argTypes, decl, r.currentFn)
	r.specMap[siteKey(r.currentFn, stmt.Interval())] = mangled
	fn := r.atlas.Functions[mangled]
	fn.IsAsync = true
	fn.ArgChannels = argChannels
}

// reportUnknownArgs records an inference failure for a call or spawn
// site whose argument types never became concrete. Only the final
// validation sweep reports; earlier passes may still learn the types.
func (r *Resolver) reportUnknownArgs(iv token.Interval, name string, argTypes []types.Base) {
	if !r.finalPass {
		return
	}
	d := r.report(InferenceFailure, iv, "cannot specialize %q: argument types are not fully known", name)
	for i, t := range argTypes {
		if t == types.Unknown {
			d.Evidence = append(d.Evidence, fmt.Sprintf("argument %d has unknown type", i))
		}
	}
}

func hasUnknown(argTypes []types.Base) bool {
	for _, t := range argTypes {
		if t == types.Unknown {
			return true
		}
	}
	return false
}

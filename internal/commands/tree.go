// Package commands contains the core logic for data collection for each command.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cognitus/cognitus/internal/types"
	"github.com/cognitus/cognitus/internal/utils"
)

const (
	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"

	// errorBuildStructureFormat is used when building the structure fails.
	errorBuildStructureFormat = "building structure for %s: %w"

	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory %s: %w"
)

// GetStructureData walks the directory structure under rootDirectoryPath and
// returns its root node. Only directories appear in the structure; excluded
// names are skipped together with their entire subtrees. Child ordering is
// the listing order of os.ReadDir. A listing failure anywhere in the walk
// terminates it and propagates.
func (builder *StructureBuilder) GetStructureData(rootDirectoryPath string) (*types.StructureNode, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return nil, fmt.Errorf(errorAbsolutePathFormat, rootDirectoryPath, absolutePathError)
	}

	rootNode := &types.StructureNode{
		Path: absoluteRootPath,
		Name: filepath.Base(absoluteRootPath),
	}

	children, buildError := builder.buildStructureNodes(absoluteRootPath)
	if buildError != nil {
		return nil, fmt.Errorf(errorBuildStructureFormat, rootDirectoryPath, buildError)
	}
	rootNode.Children = children

	return rootNode, nil
}

// buildStructureNodes recursively builds child nodes for the structure.
func (builder *StructureBuilder) buildStructureNodes(currentDirectoryPath string) ([]*types.StructureNode, error) {
	directoryEntries, readDirectoryError := os.ReadDir(currentDirectoryPath)
	if readDirectoryError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, currentDirectoryPath, readDirectoryError)
	}

	var nodes []*types.StructureNode
	for _, directoryEntry := range directoryEntries {
		if !directoryEntry.IsDir() {
			continue
		}
		if utils.ShouldExcludeDirectory(directoryEntry.Name(), builder.ExtraExclusions) {
			continue
		}

		childPath := filepath.Join(currentDirectoryPath, directoryEntry.Name())
		node := &types.StructureNode{
			Path: childPath,
			Name: directoryEntry.Name(),
		}

		childNodes, buildError := builder.buildStructureNodes(childPath)
		if buildError != nil {
			return nil, buildError
		}
		node.Children = childNodes
		nodes = append(nodes, node)
	}

	return nodes, nil
}

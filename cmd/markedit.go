/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/markedit/internal/constants"
	"github.com/Paintersrp/markedit/internal/state"
	"github.com/Paintersrp/markedit/pkg/cmd/root"
)

func Execute() {
	s, err := state.NewState()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// The editor owns the terminal, so log lines go to a file.
	logPath := filepath.Join(s.Home, constants.ConfigDir, constants.LogFile)
	logFile, logErr := tea.LogToFile(logPath, constants.AppName)
	if logErr != nil {
		log.SetOutput(os.Stderr)
	}

	rootCmd, err := root.NewCmdRoot(s)
	cobra.CheckErr(err)

	execErr := rootCmd.Execute()
	if err := s.Close(); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if logErr == nil {
		logFile.Close()
	}
	if execErr != nil {
		os.Exit(1)
	}
}

//go:build windows

package proctime

import (
	"context"
	"os/exec"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// jobTimer accounts CPU time through a job object, which aggregates the
// command and every child it spawns. The process is created suspended so it
// can be assigned to the job before it runs.
type jobTimer struct {
	real   time.Duration
	user   time.Duration
	kernel time.Duration
}

const (
	jobObjectBasicAccountingInformation = 1

	// Job accounting reports CPU time in 100 ns ticks.
	hundredNSTicks = 100
)

type jobBasicAndIOAccountingInformation struct {
	TotalUserTime             int64
	TotalKernelTime           int64
	ThisPeriodTotalUserTime   int64
	ThisPeriodTotalKernelTime int64
	TotalPageFaultCount       uint32
	TotalProcesses            uint32
	ActiveProcesses           uint32
	TotalTerminatedProcesses  uint32
}

func newTimer() Timer { return &jobTimer{} }

func (t *jobTimer) Run(ctx context.Context, name string, arg ...string) error {
	cmd := exec.CommandContext(ctx, name, arg...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags:    windows.CREATE_NEW_PROCESS_GROUP | windows.CREATE_SUSPENDED,
		NoInheritHandles: false,
	}

	if err := cmd.Start(); err != nil {
		return err
	}
	pid := uint32(cmd.Process.Pid)

	job, err := windows.CreateJobObject(nil, nil)
	if err != nil {
		return err
	}
	defer terminateJobObject(job)

	hProcess, err := windows.OpenProcess(windows.SPECIFIC_RIGHTS_ALL, false, pid)
	if err != nil {
		return err
	}
	if err := windows.AssignProcessToJobObject(job, hProcess); err != nil {
		return err
	}
	windows.CloseHandle(hProcess)

	hThread, err := mainThreadOfPID(pid)
	if err != nil {
		return err
	}
	defer windows.CloseHandle(hThread)

	start := time.Now()
	windows.ResumeThread(hThread)
	waitErr := cmd.Wait()
	t.real = time.Since(start)

	var info jobBasicAndIOAccountingInformation
	if err := queryJobAccountingInfo(job, &info); err != nil {
		return err
	}
	t.user = time.Duration(info.TotalUserTime * hundredNSTicks)
	t.kernel = time.Duration(info.TotalKernelTime * hundredNSTicks)

	return waitErr
}

func (t *jobTimer) RealTime() time.Duration { return t.real }

func (t *jobTimer) UserTime() time.Duration { return t.user }

func (t *jobTimer) KernelTime() time.Duration { return t.kernel }

func (t *jobTimer) Reset() {
	t.real = 0
	t.user = 0
	t.kernel = 0
}

// mainThreadOfPID finds the handle of the process's initial thread, which is
// the one held suspended by CREATE_SUSPENDED.
func mainThreadOfPID(pid uint32) (windows.Handle, error) {
	hSnapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPTHREAD, 0)
	if err != nil {
		return windows.InvalidHandle, err
	}
	defer windows.CloseHandle(hSnapshot)

	var threadEntry windows.ThreadEntry32
	threadEntry.Size = uint32(unsafe.Sizeof(threadEntry))

	var hThread windows.Handle
	err = windows.Thread32First(hSnapshot, &threadEntry)
	for err == nil {
		if threadEntry.OwnerProcessID == pid {
			hThread, err = windows.OpenThread(windows.THREAD_SUSPEND_RESUME, false, threadEntry.ThreadID)
			if err != nil {
				return windows.InvalidHandle, err
			}
			break
		}
		err = windows.Thread32Next(hSnapshot, &threadEntry)
	}
	return hThread, err
}

// queryJobAccountingInfo retrieves the accumulated accounting counters of a
// job object.
func queryJobAccountingInfo(job windows.Handle, info *jobBasicAndIOAccountingInformation) error {
	return windows.QueryInformationJobObject(job,
		jobObjectBasicAccountingInformation,
		uintptr(unsafe.Pointer(info)),
		uint32(unsafe.Sizeof(*info)), nil)
}

// terminateJobObject kills anything left in the job before closing it.
func terminateJobObject(job windows.Handle) error {
	if err := windows.TerminateJobObject(job, 0); err != nil {
		return err
	}
	return windows.CloseHandle(job)
}
